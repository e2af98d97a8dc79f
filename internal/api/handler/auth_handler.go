package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// SignUp creates an account and signs it in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionResponse{
		Authenticated: true,
		User:          &session.Identity,
		ExpiresAt:     &session.ExpiresAt,
	})
}

// SignIn authenticates existing credentials.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          &session.Identity,
		ExpiresAt:     &session.ExpiresAt,
	})
}

// SignOut ends the current session.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204
// @Failure      502  {object}  errorResponse
// @Router       /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.sessions.SignOut(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to sign out").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current auth state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.State()))
}

func bindCredentials(c echo.Context) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return req, nil
}
