package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/joho/godotenv"
)

// GetEnv loads the environment into Config. Unset variables fall back
// to the field's envDefault tag, so a bare development machine boots
// without a .env file.
func GetEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../../.env")
	}

	config := &Config{}
	v := reflect.ValueOf(config).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, exists := os.LookupEnv(envTag)
		if !exists {
			value = field.Tag.Get("envDefault")
		}

		switch field.Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(value)
		case reflect.Int:
			intValue, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid value for %s: %v", envTag, err)
			}
			v.Field(i).SetInt(int64(intValue))
		case reflect.Bool:
			boolValue, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid boolean value for %s: %v", envTag, err)
			}
			v.Field(i).SetBool(boolValue)
		default:
			return nil, fmt.Errorf("unsupported config field type for %s", envTag)
		}
	}

	return config, nil
}
