package auth_test

import (
	"context"
	"time"

	"github.com/finanzas-app/backend/internal/auth"
	"github.com/finanzas-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestSignUp() {
	session, err := suite.repo.SignUp(context.Background(), "Ana Pérez", " Ana@Example.com", "secret123")
	suite.Require().Nil(err)

	suite.Assert().Equal("ana@example.com", session.Identity.Email)
	suite.Require().NotNil(session.Identity.FullName)
	suite.Assert().Equal("Ana Pérez", *session.Identity.FullName)
	suite.Assert().NotEmpty(session.Token)
	suite.Assert().Equal(suite.now.Add(time.Hour), session.ExpiresAt)
	suite.Assert().NotEqual("secret123", session.Identity.PasswordHash)
}

func (suite *TestSuiteStandard) TestSignUpWithoutName() {
	session, err := suite.repo.SignUp(context.Background(), "", "ana@example.com", "secret123")
	suite.Require().Nil(err)
	suite.Assert().Nil(session.Identity.FullName)
}

func (suite *TestSuiteStandard) TestSignUpEmailInUse() {
	_, err := suite.repo.SignUp(context.Background(), "Ana", "ana@example.com", "secret123")
	suite.Require().Nil(err)

	_, err = suite.repo.SignUp(context.Background(), "Ana", "ANA@example.com", "other")
	suite.Assert().ErrorIs(err, models.ErrEmailInUse)
}

func (suite *TestSuiteStandard) TestCredentialsMissing() {
	_, err := suite.repo.SignUp(context.Background(), "Ana", "", "secret123")
	suite.Assert().ErrorIs(err, models.ErrCredentialsMissing)

	_, err = suite.repo.SignIn(context.Background(), "ana@example.com", "")
	suite.Assert().ErrorIs(err, models.ErrCredentialsMissing)
	suite.Assert().ErrorIs(err, models.ErrAuth)
}

func (suite *TestSuiteStandard) TestSignIn() {
	_, err := suite.repo.SignUp(context.Background(), "Ana", "ana@example.com", "secret123")
	suite.Require().Nil(err)

	session, err := suite.repo.SignIn(context.Background(), "ana@example.com", "secret123")
	suite.Require().Nil(err)
	suite.Assert().Equal("ana@example.com", session.Identity.Email)

	identity, err := suite.repo.CurrentUser(context.Background(), session.Token)
	suite.Require().Nil(err)
	suite.Require().NotNil(identity)
	suite.Assert().Equal(session.Identity.ID, identity.ID)
}

func (suite *TestSuiteStandard) TestSignInInvalidCredentials() {
	_, err := suite.repo.SignUp(context.Background(), "Ana", "ana@example.com", "secret123")
	suite.Require().Nil(err)

	_, err = suite.repo.SignIn(context.Background(), "ana@example.com", "wrong")
	suite.Assert().ErrorIs(err, models.ErrInvalidCredentials)

	_, err = suite.repo.SignIn(context.Background(), "nobody@example.com", "secret123")
	suite.Assert().ErrorIs(err, models.ErrInvalidCredentials)
}

func (suite *TestSuiteStandard) TestSignOut() {
	session, err := suite.repo.SignUp(context.Background(), "Ana", "ana@example.com", "secret123")
	suite.Require().Nil(err)

	suite.Require().Nil(suite.repo.SignOut(context.Background(), session.Token))

	identity, err := suite.repo.CurrentUser(context.Background(), session.Token)
	suite.Assert().Nil(err)
	suite.Assert().Nil(identity)

	// Signing out twice succeeds
	suite.Assert().Nil(suite.repo.SignOut(context.Background(), session.Token))
}

func (suite *TestSuiteStandard) TestSignOutWithoutToken() {
	suite.Assert().ErrorIs(suite.repo.SignOut(context.Background(), ""), models.ErrSessionMissing)
}

func (suite *TestSuiteStandard) TestCurrentUserExpired() {
	session, err := suite.repo.SignUp(context.Background(), "Ana", "ana@example.com", "secret123")
	suite.Require().Nil(err)

	suite.now = suite.now.Add(2 * time.Hour)

	identity, err := suite.repo.CurrentUser(context.Background(), session.Token)
	suite.Assert().Nil(err)
	suite.Assert().Nil(identity)
}

func (suite *TestSuiteStandard) TestCurrentUserInvalidToken() {
	identity, err := suite.repo.CurrentUser(context.Background(), "definitely.not.valid")
	suite.Assert().ErrorIs(err, models.ErrTokenInvalid)
	suite.Assert().Nil(identity)

	identity, err = suite.repo.CurrentUser(context.Background(), "")
	suite.Assert().Nil(err)
	suite.Assert().Nil(identity)
}

func (suite *TestSuiteStandard) TestCurrentUserOtherSecret() {
	session, err := suite.repo.SignUp(context.Background(), "Ana", "ana@example.com", "secret123")
	suite.Require().Nil(err)

	other := auth.NewRepository(suite.db, []byte("another-secret"), time.Hour)
	other.Now = suite.repo.Now

	_, err = other.CurrentUser(context.Background(), session.Token)
	suite.Assert().ErrorIs(err, models.ErrTokenInvalid)
}

func (suite *TestSuiteStandard) TestSessionEvents() {
	events, cancel := suite.repo.Subscribe()
	defer cancel()

	session, err := suite.repo.SignUp(context.Background(), "Ana", "ana@example.com", "secret123")
	suite.Require().Nil(err)
	suite.Require().Nil(suite.repo.SignOut(context.Background(), session.Token))

	signedIn := <-events
	suite.Assert().Equal(models.SessionSignedIn, signedIn.Type)
	suite.Assert().Equal(session.Identity.ID, signedIn.UserID)

	signedOut := <-events
	suite.Assert().Equal(models.SessionSignedOut, signedOut.Type)
	suite.Assert().Equal(session.Identity.ID, signedOut.UserID)
}
