package enum

/*----------- TransactionStatusEnum -----------*/

// TransactionStatusEnum is the client-facing lifecycle of a payment
// submission, superseding the raw processor result once it is consumed.
type TransactionStatusEnum string

const (
	TRX_PENDING     TransactionStatusEnum = "pending"
	TRX_REDIRECTING TransactionStatusEnum = "redirecting"
	TRX_ERROR       TransactionStatusEnum = "error"
	TRX_COMPLETE    TransactionStatusEnum = "complete"
)

func (e TransactionStatusEnum) ToString() string {
	switch e {
	case TRX_PENDING:
		return "pending"
	case TRX_REDIRECTING:
		return "redirecting"
	case TRX_ERROR:
		return "error"
	case TRX_COMPLETE:
		return "complete"
	}
	return ""
}

func (e TransactionStatusEnum) IsValid() bool {
	switch e {
	case TRX_PENDING, TRX_REDIRECTING, TRX_ERROR, TRX_COMPLETE:
		return true
	}
	return false
}

/*----------- OrderStatusEnum -----------*/

// OrderStatusEnum is the polled order-transaction status reported by the
// upstream payment network for redirect and manual follow-up methods.
type OrderStatusEnum string

const (
	ORDER_PENDING OrderStatusEnum = "pending"
	ORDER_ERROR   OrderStatusEnum = "error"
	ORDER_UNKNOWN OrderStatusEnum = "unknown"
	ORDER_FAILURE OrderStatusEnum = "failure"
	ORDER_SUCCESS OrderStatusEnum = "success"
)

func (e OrderStatusEnum) ToString() string {
	switch e {
	case ORDER_PENDING:
		return "pending"
	case ORDER_ERROR:
		return "error"
	case ORDER_UNKNOWN:
		return "unknown"
	case ORDER_FAILURE:
		return "failure"
	case ORDER_SUCCESS:
		return "success"
	}
	return ""
}

func (e OrderStatusEnum) IsValid() bool {
	switch e {
	case ORDER_PENDING, ORDER_ERROR, ORDER_UNKNOWN, ORDER_FAILURE, ORDER_SUCCESS:
		return true
	}
	return false
}

// IsTerminal reports whether polling may stop for this status.
func (e OrderStatusEnum) IsTerminal() bool {
	return e != ORDER_PENDING
}

// ShouldResetTransaction reports whether the checkout must reset the
// transaction and navigate back with an error notice.
func (e OrderStatusEnum) ShouldResetTransaction() bool {
	return e == ORDER_ERROR || e == ORDER_UNKNOWN || e == ORDER_FAILURE
}

/*----------- ProcessorResponseTypeEnum -----------*/

type ProcessorResponseTypeEnum string

const (
	PROCESSOR_COMPLETE ProcessorResponseTypeEnum = "complete"
	PROCESSOR_REDIRECT ProcessorResponseTypeEnum = "redirect"
	PROCESSOR_MANUAL   ProcessorResponseTypeEnum = "manual"
)

func (e ProcessorResponseTypeEnum) ToString() string {
	switch e {
	case PROCESSOR_COMPLETE:
		return "complete"
	case PROCESSOR_REDIRECT:
		return "redirect"
	case PROCESSOR_MANUAL:
		return "manual"
	}
	return ""
}

func (e ProcessorResponseTypeEnum) IsValid() bool {
	switch e {
	case PROCESSOR_COMPLETE, PROCESSOR_REDIRECT, PROCESSOR_MANUAL:
		return true
	}
	return false
}
