package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"crapette-server/internal/config"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "net.crapette.server"

// Audience is the intended JWT audience
const Audience = "crapette.net"

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// LoadKeys will load the public and private keys
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	privateKey = loadPrivateKey(cfg.PrivateKey)
	publicKey = loadPublicKey(cfg.PublicKey)
}

// Sign will sign a JWT for the player ID
func Sign(playerID int64) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.StandardClaims{
		Audience: Audience,
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   Issuer,
		Subject:  strconv.FormatInt(playerID, 10),
	})

	return token.SignedString(privateKey)
}

// ValidPlayerID will validate a signed JWT and return the player ID it was
// signed for
func ValidPlayerID(signedString string) (int64, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.StandardClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	})

	if err != nil {
		return 0, err
	}

	if !token.Valid {
		return 0, errors.New("claims were not valid")
	}

	claims, ok := token.Claims.(*jwtgo.StandardClaims)
	if !ok {
		return 0, fmt.Errorf("expected jwt.StandardClaims, got %T", token.Claims)
	}

	if claims.Audience != Audience {
		return 0, errors.New("invalid audience")
	}

	if claims.Issuer != Issuer {
		return 0, errors.New("invalid issuer")
	}

	return strconv.ParseInt(claims.Subject, 10, 64)
}

func mustReadFile(path string) []byte {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not read file")
	}

	return b
}

func loadPublicKey(path string) *rsa.PublicKey {
	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(mustReadFile(path))
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not parse RSA public key")
	}

	return pem
}

func loadPrivateKey(path string) *rsa.PrivateKey {
	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(mustReadFile(path))
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not parse RSA private key")
	}

	return pem
}
