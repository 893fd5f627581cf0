package enum

/*----------- ContactDetailsTypeEnum -----------*/

// ContactDetailsTypeEnum is the category of contact information a cart
// requires before payment. Derived from cart contents, never stored.
type ContactDetailsTypeEnum string

const (
	CONTACT_NONE   ContactDetailsTypeEnum = "none"
	CONTACT_TAX    ContactDetailsTypeEnum = "tax"
	CONTACT_DOMAIN ContactDetailsTypeEnum = "domain"
	CONTACT_GSUITE ContactDetailsTypeEnum = "gsuite"
)

func (e ContactDetailsTypeEnum) ToString() string {
	switch e {
	case CONTACT_NONE:
		return "none"
	case CONTACT_TAX:
		return "tax"
	case CONTACT_DOMAIN:
		return "domain"
	case CONTACT_GSUITE:
		return "gsuite"
	}
	return ""
}

func (e ContactDetailsTypeEnum) IsValid() bool {
	switch e {
	case CONTACT_NONE, CONTACT_TAX, CONTACT_DOMAIN, CONTACT_GSUITE:
		return true
	}
	return false
}
