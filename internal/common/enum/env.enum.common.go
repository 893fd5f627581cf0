package enum

type EnvEnum string

const (
	LOCAL       EnvEnum = "local"
	DEVELOPMENT EnvEnum = "development"
	PRODUCTION  EnvEnum = "production"
	STAGING     EnvEnum = "staging"
	TEST        EnvEnum = "test"
)

func (e EnvEnum) ToString() string {
	switch e {
	case LOCAL:
		return "local"
	case DEVELOPMENT:
		return "development"
	case PRODUCTION:
		return "production"
	case STAGING:
		return "staging"
	case TEST:
		return "test"
	}
	return ""
}

func (e EnvEnum) IsValid() bool {
	switch e {
	case LOCAL, DEVELOPMENT, PRODUCTION, STAGING, TEST:
		return true
	}
	return false
}
