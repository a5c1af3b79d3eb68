package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	v1 "github.com/finanzas-app/backend/internal/controllers/v1"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/test"
	"github.com/gin-gonic/gin"
)

func (suite *TestSuiteStandard) TestRegister() {
	suite.Assert().NotEmpty(suite.session.Token)
	suite.Assert().Equal("Ana Pérez", suite.session.User.Name)
	suite.Assert().Equal("ana@example.com", suite.session.User.Email)
	suite.Assert().True(suite.session.ExpiresAt.After(time.Now()))
}

func (suite *TestSuiteStandard) TestRegisterFails() {
	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Email in use", v1.RegisterEditable{Email: " ANA@example.com", Password: testPassword}, http.StatusUnauthorized, models.ErrEmailInUse.Error()},
		{"Password missing", v1.RegisterEditable{Email: "otro@example.com"}, http.StatusUnauthorized, models.ErrCredentialsMissing.Error()},
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Broken body", `{ "email": "otro@example.com }`, http.StatusBadRequest, "the body of your request contains invalid or un-parseable data"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/register", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
			suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestLogin() {
	r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/login", v1.LoginEditable{
		Email:    "Ana@Example.com",
		Password: testPassword,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AuthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(suite.session.User.ID, response.Data.User.ID)
	suite.Assert().NotEqual(suite.session.Token, response.Data.Token)
}

func (suite *TestSuiteStandard) TestLoginWrongPassword() {
	for _, email := range []string{"ana@example.com", "nadie@example.com"} {
		r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/login", v1.LoginEditable{
			Email:    email,
			Password: "wrong",
		})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
		suite.Assert().Equal(models.ErrInvalidCredentials.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
	}
}

func (suite *TestSuiteStandard) TestLogout() {
	r := suite.request(http.MethodPost, "http://example.com/v1/auth/logout", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The session is gone
	r = suite.request(http.MethodGet, "http://example.com/v1/auth/user", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
	suite.Assert().Equal(models.ErrSessionMissing.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestLogoutWithoutSession() {
	r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/logout", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
	suite.Assert().Equal(models.ErrSessionMissing.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestGetUser() {
	r := suite.request(http.MethodGet, "http://example.com/v1/auth/user", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(suite.session.User.ID, response.Data.ID)
	suite.Assert().Equal("Ana Pérez", response.Data.Name)
	suite.Assert().Equal("ana@example.com", response.Data.Email)
	suite.Assert().WithinDuration(suite.session.User.CreatedAt, response.Data.CreatedAt, time.Second)
}

func (suite *TestSuiteStandard) TestGetUserInvalidToken() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/auth/user", "", test.Bearer("not-a-token"))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestAuthOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"register", "OPTIONS, POST"},
		{"login", "OPTIONS, POST"},
		{"logout", "OPTIONS, POST"},
		{"user", "OPTIONS, GET"},
		{"events", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			r := test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/v1/auth/"+tt.path, "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
			suite.Assert().Equal(tt.allow, r.Header().Get("allow"))
		})
	}
}

// streamRecorder signals every flush of the response.
type streamRecorder struct {
	*httptest.ResponseRecorder
	flushed chan struct{}
}

func (r *streamRecorder) Flush() {
	r.ResponseRecorder.Flush()
	r.flushed <- struct{}{}
}

func (suite *TestSuiteStandard) waitForFlush(r *streamRecorder) {
	select {
	case <-r.flushed:
	case <-time.After(5 * time.Second):
		suite.FailNow("timed out waiting for the event stream")
	}
}

func (suite *TestSuiteStandard) TestSessionEvents() {
	other, err := suite.controller.Auth.SignUp(context.Background(), "Otro", "otro@example.com", testPassword)
	suite.Require().Nil(err)

	r := gin.New()
	suite.controller.RegisterRoutes(r.Group("/v1"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/v1/auth/events", nil)
	req.Header.Set("Authorization", "Bearer "+suite.session.Token)

	recorder := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), flushed: make(chan struct{}, 10)}
	done := make(chan struct{})
	go func() {
		r.ServeHTTP(recorder, req)
		close(done)
	}()

	// Headers are flushed once the stream is subscribed
	suite.waitForFlush(recorder)

	// Events of other users are not streamed
	_, err = suite.controller.Auth.SignIn(context.Background(), "otro@example.com", testPassword)
	suite.Require().Nil(err)

	_, err = suite.controller.Auth.SignIn(context.Background(), "ana@example.com", testPassword)
	suite.Require().Nil(err)
	suite.waitForFlush(recorder)

	cancel()
	<-done

	suite.Assert().Equal(http.StatusOK, recorder.Code)
	suite.Assert().Contains(recorder.Result().Header.Get("Content-Type"), "text/event-stream")

	body := recorder.Body.String()
	suite.Assert().Contains(body, "signed_in")
	suite.Assert().Contains(body, string(models.SessionSignedIn))
	suite.Assert().Contains(body, suite.session.User.ID.String())
	suite.Assert().NotContains(body, other.Identity.ID.String())
}

func (suite *TestSuiteStandard) TestSessionEventsWithoutSession() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/auth/events", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}
