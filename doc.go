// Package users provides a small token-authenticated user-management API:
// an in-memory, concurrency-safe user store, an opaque bearer-token
// registry, and the request pipeline stages (recovery, authentication,
// request logging) that wrap the HTTP handlers.
//
// Request pipeline:
//   - middleware/recovery runs outermost and contains panics or unhandled
//     errors from any inner stage, converting them into a JSON 500 so the
//     transport never sees a crash.
//   - middleware/authware validates opaque bearer tokens against a
//     TokenRegistry, letting a configurable public allow-list (login,
//     health, docs) through unauthenticated. On success it attaches an
//     AuthContext to the request for downstream handlers.
//   - middleware/requestlog records method, path, status, and duration for
//     every request that clears authentication, re-raising failures
//     unchanged for the recovery stage.
//
// ApplyRequestPipeline composes the three stages in that fixed order, and
// RegisterUserRoutes mounts the CRUD, login, and health handlers.
//
// Stores and registries are plain injected values with internal
// synchronization so each test can construct fresh instances; nothing in
// this package relies on process-global state.
package users
