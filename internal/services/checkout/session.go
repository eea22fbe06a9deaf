package checkout

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"payquick/internal/models"
	"payquick/internal/repositories/securestore"
	"payquick/internal/security"
	"payquick/internal/services/bootstrap"
	"payquick/internal/services/cart"
	creditcard "payquick/internal/services/credit-card"
)

// Session is one client's checkout: the card form, the step it is at, its
// cart and the last transaction it completed. All methods are safe for
// concurrent use; field errors are recomputed on every call.
type Session struct {
	id    string
	deps  Dependencies
	store Store
	cart  *cart.Cart
	now   func() time.Time

	mu         sync.Mutex
	card       models.CardInfo
	cardType   models.CardType
	touched    map[creditcard.Field]bool
	step       Step
	processing bool
	lastErr    string
	lastTx     *models.SecuredTransaction
	updatedAt  time.Time
}

func NewSession(id string, store Store, deps Dependencies) *Session {
	s := &Session{
		id:    id,
		deps:  deps,
		store: store,
		cart:  cart.New(store, deps.Log.With("session_id", id)),
		now:   time.Now,
	}
	s.resetLocked()
	s.updatedAt = s.now()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Cart returns the current cart contents.
func (s *Session) Cart() models.Cart {
	return s.cart.Snapshot()
}

// AddItem puts product in the cart. Like every cart edit below it is
// refused while a payment is in flight.
func (s *Session) AddItem(ctx context.Context, product models.Product) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return s.cart.Snapshot(), ErrPaymentInProgress
	}
	s.touchLocked()
	return s.cart.Add(ctx, product)
}

func (s *Session) UpdateItemQuantity(ctx context.Context, id string, quantity int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return s.cart.Snapshot(), ErrPaymentInProgress
	}
	s.touchLocked()
	return s.cart.UpdateQuantity(ctx, id, quantity)
}

func (s *Session) RemoveItem(ctx context.Context, id string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return s.cart.Snapshot(), ErrPaymentInProgress
	}
	s.touchLocked()
	return s.cart.Remove(ctx, id)
}

func (s *Session) ClearCart(ctx context.Context) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return s.cart.Snapshot(), ErrPaymentInProgress
	}
	s.touchLocked()
	return s.cart.Clear(ctx), nil
}

// Restore applies a bootstrap snapshot.
func (s *Session) Restore(snap bootstrap.Snapshot) {
	if snap.Cart != nil {
		s.cart.Load(*snap.Cart)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.LastTransaction != nil {
		s.lastTx = snap.LastTransaction
	}
}

// LastActivity is the time of the last state change.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// UpdateCardInfo merges patch into the card form. The number is
// reformatted and reclassified, the expiry goes through the keystroke
// normaliser and the CVV is cut to the network's length.
func (s *Session) UpdateCardInfo(patch models.CardInfoPatch) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return s.stateLocked(), err
	}

	if patch.Number != nil {
		s.card.Number = creditcard.FormatCardNumber(*patch.Number)
		s.cardType = creditcard.DetectCardType(s.card.Number)
	}
	if patch.ExpiryDate != nil {
		s.card.ExpiryDate = creditcard.NormalizeExpiryInput(*patch.ExpiryDate)
	}
	if patch.CVV != nil {
		s.card.CVV = creditcard.NormalizeCVV(*patch.CVV, s.cardType)
	}
	if patch.HolderName != nil {
		s.card.HolderName = *patch.HolderName
	}
	s.touchLocked()
	return s.stateLocked(), nil
}

// Backspace deletes the last character of field, taking a trailing
// separator with it.
func (s *Session) Backspace(field creditcard.Field) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	field, ok := creditcard.ParseField(string(field))
	if !ok {
		return s.stateLocked(), ErrUnknownField
	}
	if err := s.editableLocked(); err != nil {
		return s.stateLocked(), err
	}

	switch field {
	case creditcard.FieldNumber:
		s.card.Number = creditcard.FormatCardNumber(creditcard.Backspace(s.card.Number))
		s.cardType = creditcard.DetectCardType(s.card.Number)
	case creditcard.FieldExpiryDate:
		s.card.ExpiryDate = creditcard.Backspace(s.card.ExpiryDate)
	case creditcard.FieldCVV:
		s.card.CVV = creditcard.Backspace(s.card.CVV)
	case creditcard.FieldHolderName:
		_, size := utf8.DecodeLastRuneInString(s.card.HolderName)
		s.card.HolderName = s.card.HolderName[:len(s.card.HolderName)-size]
	}
	s.touchLocked()
	return s.stateLocked(), nil
}

// Touch marks field as blurred so its error becomes visible.
func (s *Session) Touch(field creditcard.Field) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	field, ok := creditcard.ParseField(string(field))
	if !ok {
		return s.stateLocked(), ErrUnknownField
	}
	s.touched[field] = true
	s.touchLocked()
	return s.stateLocked(), nil
}

// Continue moves from the card form to the summary when every field is
// valid. On refusal every field is marked touched so that all errors show.
func (s *Session) Continue() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return s.stateLocked(), err
	}
	if !s.errorsLocked().Valid() {
		for _, f := range creditcard.Fields {
			s.touched[f] = true
		}
		return s.stateLocked(), ErrInvalidCard
	}

	s.step = StepSummary
	s.lastErr = ""
	s.touchLocked()
	return s.stateLocked(), nil
}

// Back returns from the summary to the card form.
func (s *Session) Back() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return s.stateLocked(), ErrPaymentInProgress
	}
	if s.step != StepSummary {
		return s.stateLocked(), ErrWrongStep
	}
	s.step = StepCard
	s.touchLocked()
	return s.stateLocked(), nil
}

// Submit pays for the cart with the card on file. It may only run at the
// summary step and only once at a time. On success the secured
// transaction is stored, the cart emptied, the card form wiped and the
// session moves to StepDone. On failure nothing but the error message
// changes.
func (s *Session) Submit(ctx context.Context) (*models.SecuredTransaction, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, ErrPaymentInProgress
	}
	if s.step != StepSummary {
		s.mu.Unlock()
		return nil, ErrWrongStep
	}
	if !s.errorsLocked().Valid() {
		s.mu.Unlock()
		return nil, ErrInvalidCard
	}
	if s.cart.IsEmpty() {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	snap := s.cart.Snapshot()
	req := models.PaymentRequest{
		CardInfo: models.PaymentCardInfo{CardInfo: s.card, CardType: s.cardType},
		Items:    s.cart.PaymentItems(),
		Total:    cart.ComputeTotals(snap.Items, s.deps.TaxRate).Total,
		Currency: s.deps.Currency,
	}
	s.processing = true
	s.lastErr = ""
	s.touchLocked()
	s.mu.Unlock()

	log := s.deps.Log.With("session_id", s.id)
	log.Info(ctx, "submitting payment", "amount", req.Total, "items", len(req.Items))

	tx, err := s.deps.Gateway.ProcessPayment(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
	s.touchLocked()

	if err != nil {
		s.lastErr = err.Error()
		log.Warn(ctx, "payment failed", "error", err)
		return nil, err
	}

	secured := security.SecurePaymentData(*tx)
	if !s.store.Save(ctx, securestore.KeyLastTransaction, secured) {
		log.Error(ctx, "secured transaction not persisted", "transaction_id", secured.ID)
	}
	s.lastTx = &secured
	s.cart.Clear(ctx)
	s.card = models.CardInfo{}
	s.cardType = models.CardTypeUnknown
	s.touched = make(map[creditcard.Field]bool)
	s.step = StepDone

	log.Info(ctx, "payment succeeded", "transaction_id", secured.ID)
	return &secured, nil
}

// Reset starts a blank checkout. The cart and the last transaction stay.
func (s *Session) Reset() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return s.stateLocked(), ErrPaymentInProgress
	}
	s.resetLocked()
	s.touchLocked()
	return s.stateLocked(), nil
}

// Processing reports whether a payment is in flight.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Session) LastTransaction() *models.SecuredTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTx
}

// ClearTransaction forgets the last transaction and overwrites the stored
// copy with null.
func (s *Session) ClearTransaction(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTx = nil
	if !s.store.Save(ctx, securestore.KeyLastTransaction, nil) {
		s.deps.Log.Error(ctx, "cleared transaction not persisted", "session_id", s.id)
	}
	s.touchLocked()
}

func (s *Session) editableLocked() error {
	if s.processing {
		return ErrPaymentInProgress
	}
	if s.step != StepCard {
		return ErrWrongStep
	}
	return nil
}

func (s *Session) resetLocked() {
	s.card = models.CardInfo{}
	s.cardType = models.CardTypeUnknown
	s.touched = make(map[creditcard.Field]bool)
	s.step = StepCard
	s.lastErr = ""
}

func (s *Session) touchLocked() {
	s.updatedAt = s.now()
}

func (s *Session) errorsLocked() creditcard.FieldErrors {
	return s.deps.Validator.Validate(s.card, s.cardType)
}

func (s *Session) stateLocked() State {
	errs := s.errorsLocked()
	snap := s.cart.Snapshot()
	totals := cart.ComputeTotals(snap.Items, s.deps.TaxRate)

	st := State{
		SessionID: s.id,
		Step:      s.step,
		Card: CardView{
			CardInfo:        s.card,
			CardType:        s.cardType,
			CardTypeName:    creditcard.DisplayName(s.cardType),
			MaxNumberLength: creditcard.MaxInputLength(s.cardType),
			CVVLength:       creditcard.CVVLength(s.cardType),
		},
		Errors:          errs.Visible(s.touched),
		IsValid:         errs.Valid(),
		Processing:      s.processing,
		Error:           s.lastErr,
		Cart:            snap,
		Totals:          totals,
		LastTransaction: s.lastTx,
		UpdatedAt:       s.updatedAt,
	}
	if s.step == StepSummary {
		st.Summary = &Summary{
			MaskedNumber: "**** **** **** " + lastFour(s.card.Number),
			HolderName:   s.card.HolderName,
			CardType:     creditcard.DisplayName(s.cardType),
			Totals:       totals,
		}
	}
	return st
}

func lastFour(number string) string {
	d := creditcard.Digits(number)
	if len(d) <= 4 {
		return d
	}
	return d[len(d)-4:]
}
