package mux

import (
	"time"

	appconfig "crapette-server/internal/config"

	grecaptcha "github.com/ezzarghili/recaptcha-go"
	"github.com/sirupsen/logrus"
)

type recaptcha interface {
	// Verify will verify the token is valid
	Verify(token string) error
}

// insecureRecaptcha accepts every token. Used when no secret is
// configured, i.e. local development and tests.
type insecureRecaptcha struct{}

func (insecureRecaptcha) Verify(string) error { return nil }

func newRecaptcha() recaptcha {
	secret := appconfig.Instance().RecaptchaSecret
	if secret == "" {
		logrus.Warn("recaptcha secret not set, verification is disabled")
		return insecureRecaptcha{}
	}

	captcha, err := grecaptcha.NewReCAPTCHA(secret, grecaptcha.V3, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not load recaptcha")
	}

	return &captcha
}
