package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/logger"
	"storefront-checkout/internal/service/contact"

	"gorm.io/gorm"
)

// Generic wizard steps, traversed strictly in this order. The
// order-review and summary panels are not steps; they are independent
// booleans on the session so the user can keep editing the cart while a
// step is active.
const (
	StepContactForm   = "contact-form"
	StepPaymentMethod = "payment-method-step"
)

var stepOrder = []string{StepContactForm, StepPaymentMethod}

func newSteps() []models.StepState {
	steps := make([]models.StepState, 0, len(stepOrder))
	for i, id := range stepOrder {
		status := enum.STEP_PENDING
		if i == 0 {
			status = enum.STEP_ACTIVE
		}
		steps = append(steps, models.StepState{StepID: id, Status: status, Position: i})
	}
	return steps
}

func (s *Service) StartCheckout(cartKey string, userID string, geoCountry string) *types.Response {
	if _, err := s.cart.GetResponseCart(s.ctx, cartKey); err != nil {
		return &types.Response{Code: http.StatusNotFound, Message: "cart not found", Error: err}
	}

	if existing, err := s.rp.Checkout.FindByCartKey(s.ctx, cartKey); err == nil {
		return s.respondWithSession(existing, http.StatusOK, "checkout session resumed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to load checkout session", Error: err}
	}

	steps, err := models.JSONBFrom(newSteps())
	if err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to start checkout", Error: err}
	}

	session := &models.CheckoutSession{
		CartKey:     cartKey,
		Steps:       steps,
		FormStatus:  enum.FORM_READY,
		IsLoggedOut: userID == "",
	}

	// Pre-fill the contact form from the cross-session cache, or at
	// least a geo-guessed country for anonymous carts.
	if prefill := s.prefillContact(userID, geoCountry); prefill != nil {
		if raw, err := models.JSONBFrom(prefill); err == nil {
			session.ContactDetails = raw
		}
	}

	if err := s.rp.Checkout.Create(s.ctx, session); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to start checkout", Error: err}
	}
	return s.respondWithSession(session, http.StatusCreated, "checkout session created")
}

func (s *Service) prefillContact(userID string, geoCountry string) contact.ManagedContactDetails {
	resp := s.contact.GetDomainContactInformation(userID, geoCountry)
	if resp.Code != http.StatusOK {
		return nil
	}
	wire, ok := resp.Data.(map[string]string)
	if !ok {
		return nil
	}
	return contact.Hydrate(wire)
}

func (s *Service) GetSession(cartKey string) *types.Response {
	session, resp := s.loadSession(cartKey)
	if resp != nil {
		return resp
	}
	return s.respondWithSession(session, http.StatusOK, "checkout session")
}

// AdvanceStep attempts to complete the named step and activate the next
// one. The contact-form step touches every field, validates, and only on
// success pushes the tax location into the cart and caches the details.
func (s *Service) AdvanceStep(cartKey string, userID string, req *AdvanceStepRequest) *types.Response {
	session, resp := s.loadSession(cartKey)
	if resp != nil {
		return resp
	}
	if session.FormStatus.IsBusy() {
		return &types.Response{Code: http.StatusConflict, Message: "another validation or submission is in flight"}
	}

	steps, err := decodeSteps(session)
	if err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "corrupt checkout session", Error: err}
	}

	idx := indexOfStep(steps, req.StepID)
	if idx < 0 {
		return &types.Response{Code: http.StatusBadRequest, Message: "unknown step: " + req.StepID}
	}
	if steps[idx].Status != enum.STEP_ACTIVE {
		return &types.Response{Code: http.StatusConflict, Message: "step is not active: " + req.StepID}
	}

	switch req.StepID {
	case StepContactForm:
		return s.advanceContactStep(session, steps, idx, userID, req)
	case StepPaymentMethod:
		// The payment step completes through the transaction submission
		// entry point, never by direct advance.
		return &types.Response{Code: http.StatusBadRequest, Message: "payment step completes on submission"}
	}
	return &types.Response{Code: http.StatusBadRequest, Message: "unknown step: " + req.StepID}
}

func (s *Service) advanceContactStep(session *models.CheckoutSession, steps []models.StepState, idx int, userID string, req *AdvanceStepRequest) *types.Response {
	if err := s.SetFormStatus(s.ctx, session, enum.FORM_VALIDATING); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to update checkout session", Error: err}
	}

	resp := s.contact.ValidateContact(session.CartKey, userID, &contact.ContactDetailsRequest{
		Fields:       req.Fields,
		CurrentQuery: req.CurrentQuery,
	}, true)

	if err := s.SetFormStatus(s.ctx, session, enum.FORM_READY); err != nil {
		logger.Error.Printf("reset form status for session %s: %v", session.ID, err)
	}

	if resp.Code != http.StatusOK {
		return resp
	}

	markComplete(steps, idx)
	if err := s.saveSteps(session, steps); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to update checkout session", Error: err}
	}

	// Reload: validation stored the contact details on its own copy of
	// the row, so the session in hand is behind.
	fresh, resp := s.loadSession(session.CartKey)
	if resp != nil {
		return resp
	}
	return s.respondWithSession(fresh, http.StatusOK, "contact step complete")
}

func (s *Service) ToggleReview(cartKey string, open bool) *types.Response {
	return s.togglePanel(cartKey, "order review", func(session *models.CheckoutSession) {
		session.ReviewOpen = open
	})
}

func (s *Service) ToggleSummary(cartKey string, open bool) *types.Response {
	return s.togglePanel(cartKey, "summary", func(session *models.CheckoutSession) {
		session.SummaryOpen = open
	})
}

// SetConsent records the third-party consent flag. It gates submission
// but is unrelated to step completion.
func (s *Service) SetConsent(cartKey string, given bool) *types.Response {
	return s.togglePanel(cartKey, "consent", func(session *models.CheckoutSession) {
		session.ConsentGiven = given
	})
}

func (s *Service) togglePanel(cartKey string, what string, apply func(*models.CheckoutSession)) *types.Response {
	session, resp := s.loadSession(cartKey)
	if resp != nil {
		return resp
	}
	apply(session)
	if err := s.rp.Checkout.Save(s.ctx, session); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to update " + what, Error: err}
	}
	return s.respondWithSession(session, http.StatusOK, what+" updated")
}

// SessionReadyToSubmit loads the session and checks the submission
// gates: contact step complete, payment step active, consent given, and
// no submission already in flight. Returns a ready session or the
// response describing which gate failed.
func (s *Service) SessionReadyToSubmit(ctx context.Context, cartKey string) (*models.CheckoutSession, *types.Response) {
	session, resp := s.loadSession(cartKey)
	if resp != nil {
		return nil, resp
	}
	if session.FormStatus.IsBusy() {
		return nil, &types.Response{Code: http.StatusConflict, Message: "another submission is in flight"}
	}

	steps, err := decodeSteps(session)
	if err != nil {
		return nil, &types.Response{Code: http.StatusInternalServerError, Message: "corrupt checkout session", Error: err}
	}
	for _, step := range steps {
		if step.StepID == StepPaymentMethod {
			continue
		}
		if step.Status != enum.STEP_COMPLETE {
			return nil, &types.Response{Code: http.StatusPreconditionFailed, Message: "step not complete: " + step.StepID}
		}
	}
	if !session.ConsentGiven {
		return nil, &types.Response{Code: http.StatusPreconditionFailed, Message: "consent has not been given"}
	}
	return session, nil
}

// SetFormStatus writes only the status column. The in-memory session
// may be stale by the time validation finishes, so a full-row save here
// would wipe the contact details the validator just stored.
func (s *Service) SetFormStatus(ctx context.Context, session *models.CheckoutSession, status enum.FormStatusEnum) error {
	session.FormStatus = status
	return s.rp.Checkout.UpdateFields(ctx, session.CartKey, map[string]any{"form_status": status})
}

// CompletePaymentStep marks the payment step complete after a successful
// submission, leaving no step active.
func (s *Service) CompletePaymentStep(ctx context.Context, session *models.CheckoutSession) error {
	steps, err := decodeSteps(session)
	if err != nil {
		return err
	}
	idx := indexOfStep(steps, StepPaymentMethod)
	if idx < 0 {
		return errors.New("payment step missing from session")
	}
	markComplete(steps, idx)
	return s.saveSteps(session, steps)
}

func (s *Service) SignupStore() SignupDestinationStore {
	return s.signup
}

// markComplete closes the step and activates the next pending one,
// preserving the single-active invariant.
func markComplete(steps []models.StepState, idx int) {
	steps[idx].Status = enum.STEP_COMPLETE
	for i := idx + 1; i < len(steps); i++ {
		if steps[i].Status == enum.STEP_PENDING {
			steps[i].Status = enum.STEP_ACTIVE
			return
		}
	}
}

func indexOfStep(steps []models.StepState, stepID string) int {
	for i, step := range steps {
		if step.StepID == stepID {
			return i
		}
	}
	return -1
}

func decodeSteps(session *models.CheckoutSession) ([]models.StepState, error) {
	var steps []models.StepState
	if len(session.Steps) == 0 {
		return nil, errors.New("session has no steps")
	}
	if err := json.Unmarshal(session.Steps, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

func (s *Service) saveSteps(session *models.CheckoutSession, steps []models.StepState) error {
	raw, err := models.JSONBFrom(steps)
	if err != nil {
		return err
	}
	session.Steps = raw
	return s.rp.Checkout.UpdateFields(s.ctx, session.CartKey, map[string]any{"steps": raw})
}

func (s *Service) loadSession(cartKey string) (*models.CheckoutSession, *types.Response) {
	session, err := s.rp.Checkout.FindByCartKey(s.ctx, cartKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.Response{Code: http.StatusNotFound, Message: "checkout session not found", Error: err}
		}
		return nil, &types.Response{Code: http.StatusInternalServerError, Message: "failed to load checkout session", Error: err}
	}
	return session, nil
}

func (s *Service) respondWithSession(session *models.CheckoutSession, code int, message string) *types.Response {
	return &types.Response{Code: code, Message: message, Data: session}
}
