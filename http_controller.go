package users

import (
	"fmt"

	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// UserControllerRoutes holds the paths the controller mounts.
type UserControllerRoutes struct {
	Users  string
	User   string
	Login  string
	Health string
}

// UserController exposes the CRUD, login, and health handlers. Handlers
// are thin: they validate structurally required input, delegate to the
// store or registry, and map results to status codes.
type UserController struct {
	Debug  bool
	Logger Logger
	Store  Store
	Tokens TokenRegistry
	Routes *UserControllerRoutes
}

type UserControllerOption func(*UserController) *UserController

// WithStore sets the backing user store.
func WithStore(store Store) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Store = store
		return c
	}
}

// WithTokenRegistry sets the registry login issues tokens into.
func WithTokenRegistry(tokens TokenRegistry) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Tokens = tokens
		return c
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger Logger) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Logger = logger
		return c
	}
}

// WithDebug enables payload dumps on create/update.
func WithDebug(debug bool) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Debug = debug
		return c
	}
}

func NewUserController(opts ...UserControllerOption) *UserController {
	c := &UserController{
		Logger: defLogger{},
		Routes: &UserControllerRoutes{
			Users:  "/users",
			User:   "/users/:id",
			Login:  "/auth/login",
			Health: "/health",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Store == nil {
		panic("Missing Store in user controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenRegistry in user controller...")
	}

	return c
}

func RegisterUserRoutes[T any](app router.Router[T], opts ...UserControllerOption) *UserController {

	controller := NewUserController(opts...)

	app.Get(controller.Routes.Health, controller.HealthCheck).
		SetName("health.get")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth-login.post")

	app.Get(controller.Routes.Users, controller.Index).
		SetName("users.index")
	app.Post(controller.Routes.Users, controller.Create).
		SetName("users.create")

	app.Get(controller.Routes.User, controller.Show).
		SetName("users.show")
	app.Put(controller.Routes.User, controller.Update).
		SetName("users.update")
	app.Delete(controller.Routes.User, controller.Delete).
		SetName("users.delete")

	return controller
}

// Index lists users. Page and size fall back to the store defaults and
// size is clamped there, so any query values are safe to pass through.
func (c *UserController) Index(ctx router.Context) error {
	page := ctx.QueryInt("page", 1)
	size := ctx.QueryInt("size", DefaultPageSize)

	return RespondJSON(ctx, router.StatusOK, c.Store.GetAll(page, size))
}

// Show returns a single user or 404.
func (c *UserController) Show(ctx router.Context) error {
	id := ctx.ParamsInt("id", 0)

	user, ok := c.Store.GetByID(id)
	if !ok {
		return c.respondNotFound(ctx, id)
	}

	return RespondJSON(ctx, router.StatusOK, user)
}

// Create validates the payload, stores a new user, and returns 201 with a
// Location reference.
func (c *UserController) Create(ctx router.Context) error {
	payload, err := c.bindPayload(ctx)
	if err != nil {
		return RespondValidationError(ctx, err.Error())
	}

	user := c.Store.Add(payload.Name, payload.Email)

	c.Logger.Info("user created", "id", user.ID)

	ctx.SetHeader("Location", fmt.Sprintf("%s/%d", c.Routes.Users, user.ID))
	return RespondJSON(ctx, router.StatusCreated, user)
}

// Update replaces an existing user wholesale, preserving its id.
func (c *UserController) Update(ctx router.Context) error {
	id := ctx.ParamsInt("id", 0)

	payload, err := c.bindPayload(ctx)
	if err != nil {
		return RespondValidationError(ctx, err.Error())
	}

	if !c.Store.Update(id, payload.Name, payload.Email) {
		return c.respondNotFound(ctx, id)
	}

	return RespondNoContent(ctx, router.StatusNoContent)
}

// Delete removes a user. Deleting an already-absent id is a 404.
func (c *UserController) Delete(ctx router.Context) error {
	id := ctx.ParamsInt("id", 0)

	if !c.Store.Delete(id) {
		return c.respondNotFound(ctx, id)
	}

	return RespondNoContent(ctx, router.StatusNoContent)
}

// LoginPost issues a fresh token. The endpoint is public and takes no
// credentials; a valid token authenticates a caller, not an identity.
func (c *UserController) LoginPost(ctx router.Context) error {
	token := c.Tokens.Issue()

	c.Logger.Info("user logged in", "token", token)

	return RespondJSON(ctx, router.StatusOK, LoginResponse{
		Token:   token,
		Message: "Use this token in the Authorization header to access protected endpoints",
	})
}

// HealthCheck reports liveness; it sits on the public allow-list.
func (c *UserController) HealthCheck(ctx router.Context) error {
	return RespondJSON(ctx, router.StatusOK, map[string]any{
		"status": "ok",
		"users":  c.Store.Len(),
	})
}

func (c *UserController) bindPayload(ctx router.Context) (*CreateUserRequest, error) {
	payload := new(CreateUserRequest)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Warn("user payload parse error", "error", err)
		return nil, fmt.Errorf("request body is required")
	}

	if c.Debug {
		fmt.Println("======= USER PAYLOAD ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("===========================")
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}

	return payload, nil
}

func (c *UserController) respondNotFound(ctx router.Context, id int) error {
	return RespondError(ctx, router.StatusNotFound, "Not found",
		fmt.Sprintf("user %d does not exist", id))
}
