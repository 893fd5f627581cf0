package jwt

import (
	"encoding/json"
	"fmt"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/helper"
	"storefront-checkout/internal/pkg/logger"
	"storefront-checkout/internal/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
)

const (
	UserDataKey = "user_data"
)

func getJWTSecret() []byte {
	secret := helper.GetEnv("JWT_SECRET")
	if secret == "" {
		logger.Warning.Println("JWT_SECRET not found, using default secret")
		secret = "$d3f4uIt_s3cr3t_key#"
	}
	return []byte(secret)
}

// ValidateToken verifies a bearer token issued by the accounts service
// and extracts the embedded user identity.
func ValidateToken(jwtToken string) (*types.UserWithAuth, error) {
	token, err := jwt.Parse(jwtToken, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(getJWTSecret()), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		var userData types.UserWithAuth
		// Extract user data from claims
		if claims[UserDataKey] == nil {
			return nil, fmt.Errorf("user data not found in token claims")
		}

		userDataBytes, err := json.Marshal(claims[UserDataKey])
		if err != nil {
			return nil, fmt.Errorf("error marshalling user data: %v", err)
		}

		err = json.Unmarshal(userDataBytes, &userData)
		if err != nil {
			return nil, fmt.Errorf("error unmarshalling user data: %v", err)
		}

		err = validation.Validate(userData)
		if err != nil {
			return nil, err
		}

		return &userData, nil
	}

	return nil, fmt.Errorf("invalid token")
}
