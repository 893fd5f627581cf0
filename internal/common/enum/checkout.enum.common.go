package enum

/*----------- StepStatusEnum -----------*/

type StepStatusEnum string

const (
	STEP_PENDING  StepStatusEnum = "pending"
	STEP_ACTIVE   StepStatusEnum = "active"
	STEP_COMPLETE StepStatusEnum = "complete"
)

func (e StepStatusEnum) ToString() string {
	switch e {
	case STEP_PENDING:
		return "pending"
	case STEP_ACTIVE:
		return "active"
	case STEP_COMPLETE:
		return "complete"
	}
	return ""
}

func (e StepStatusEnum) IsValid() bool {
	switch e {
	case STEP_PENDING, STEP_ACTIVE, STEP_COMPLETE:
		return true
	}
	return false
}

/*----------- FormStatusEnum -----------*/

// FormStatusEnum gates the submit control. While VALIDATING or SUBMITTING
// a second submit attempt must be rejected.
type FormStatusEnum string

const (
	FORM_READY      FormStatusEnum = "ready"
	FORM_VALIDATING FormStatusEnum = "validating"
	FORM_SUBMITTING FormStatusEnum = "submitting"
	FORM_COMPLETE   FormStatusEnum = "complete"
)

func (e FormStatusEnum) ToString() string {
	switch e {
	case FORM_READY:
		return "ready"
	case FORM_VALIDATING:
		return "validating"
	case FORM_SUBMITTING:
		return "submitting"
	case FORM_COMPLETE:
		return "complete"
	}
	return ""
}

func (e FormStatusEnum) IsValid() bool {
	switch e {
	case FORM_READY, FORM_VALIDATING, FORM_SUBMITTING, FORM_COMPLETE:
		return true
	}
	return false
}

func (e FormStatusEnum) IsBusy() bool {
	return e == FORM_VALIDATING || e == FORM_SUBMITTING
}
