package models

// CardType is the card network inferred from the leading digits of a number.
type CardType string

const (
	CardTypeVisa       CardType = "visa"
	CardTypeMasterCard CardType = "mastercard"
	CardTypeAmex       CardType = "amex"
	CardTypeUnknown    CardType = "unknown"
)

// CardInfo is the raw card form owned by an active checkout session.
// It is never persisted in this form.
type CardInfo struct {
	Number     string `json:"number"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holderName"`
}

// CardInfoPatch is a partial update of CardInfo; nil fields are left alone.
type CardInfoPatch struct {
	Number     *string `json:"number,omitempty"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
	CVV        *string `json:"cvv,omitempty"`
	HolderName *string `json:"holderName,omitempty"`
}

// PaymentCardInfo is the card section of a gateway request.
type PaymentCardInfo struct {
	CardInfo
	CardType CardType `json:"cardType,omitempty"`
}

// SecuredCardNumber replaces a full card number once it has been secured.
type SecuredCardNumber struct {
	Masked string `json:"masked"`
	Hash   string `json:"hash"`
	Last4  string `json:"last4"`
}

// SecuredCardInfo is the persisted card section. It has no CVV field.
type SecuredCardInfo struct {
	Number     SecuredCardNumber `json:"number"`
	ExpiryDate string            `json:"expiryDate"`
	HolderName string            `json:"holderName"`
	CardType   CardType          `json:"cardType,omitempty"`
}
