package client

import "time"

// KeywordMode is how a keyword matches inbound message text.
type KeywordMode string

const (
	KeywordModeText     KeywordMode = "Text"
	KeywordModeWildcard KeywordMode = "Wildcard"
	KeywordModeRegex    KeywordMode = "Regex"
)

// Priority of an out-message.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
)

// DeliveryMode of an out-message or Strex transaction.
type DeliveryMode string

const (
	DeliveryModeAtMostOnce  DeliveryMode = "AtMostOnce"
	DeliveryModeAtLeastOnce DeliveryMode = "AtLeastOnce"
)

// StatusCode is the coarse processing state of a message or transaction.
type StatusCode string

const (
	StatusQueued   StatusCode = "Queued"
	StatusSent     StatusCode = "Sent"
	StatusFailed   StatusCode = "Failed"
	StatusOk       StatusCode = "Ok"
	StatusReversed StatusCode = "Reversed"
)

// DetailedStatusCode refines StatusCode.
type DetailedStatusCode string

const (
	DetailedNone                    DetailedStatusCode = "None"
	DetailedDelivered               DetailedStatusCode = "Delivered"
	DetailedExpired                 DetailedStatusCode = "Expired"
	DetailedUndelivered             DetailedStatusCode = "Undelivered"
	DetailedUnknownError            DetailedStatusCode = "UnknownError"
	DetailedOtherError              DetailedStatusCode = "OtherError"
	DetailedRejected                DetailedStatusCode = "Rejected"
	DetailedUnknownSubscriber       DetailedStatusCode = "UnknownSubscriber"
	DetailedSubscriberUnavailable   DetailedStatusCode = "SubscriberUnavailable"
	DetailedSubscriberBarred        DetailedStatusCode = "SubscriberBarred"
	DetailedInsufficientFunds       DetailedStatusCode = "InsufficientFunds"
	DetailedRegistrationRequired    DetailedStatusCode = "RegistrationRequired"
	DetailedUnknownAge              DetailedStatusCode = "UnknownAge"
	DetailedDuplicateTransaction    DetailedStatusCode = "DuplicateTransaction"
	DetailedSubscriberLimitExceeded DetailedStatusCode = "SubscriberLimitExceeded"
	DetailedMaxPinRetry             DetailedStatusCode = "MaxPinRetry"
	DetailedInvalidAmount           DetailedStatusCode = "InvalidAmount"
	DetailedOneTimePasswordExpired  DetailedStatusCode = "OneTimePasswordExpired"
	DetailedOneTimePasswordFailed   DetailedStatusCode = "OneTimePasswordFailed"
	DetailedSubscriberTooYoung      DetailedStatusCode = "SubscriberTooYoung"
	DetailedTimeoutError            DetailedStatusCode = "TimeoutError"
	DetailedPending                 DetailedStatusCode = "Pending"
	DetailedTemporaryError          DetailedStatusCode = "TemporaryError"
	DetailedMissingPreAuth          DetailedStatusCode = "MissingPreAuth"
	DetailedMissingDeliveryReport   DetailedStatusCode = "MissingDeliveryReport"
	DetailedUserInTransaction       DetailedStatusCode = "UserInTransaction"
	DetailedConnectionOffline       DetailedStatusCode = "ConnectionOffline"
	DetailedInvalidCredentials      DetailedStatusCode = "InvalidCredentials"
	DetailedInvalidOtp              DetailedStatusCode = "InvalidOtp"
	DetailedCardPspError            DetailedStatusCode = "CardPspError"
	DetailedMnoError                DetailedStatusCode = "MnoError"
	DetailedStopped                 DetailedStatusCode = "Stopped"
)

// UserValidity is the Strex registration level of a recipient.
type UserValidity string

const (
	UserValidityUnregistered UserValidity = "Unregistered"
	UserValidityPartial      UserValidity = "Partial"
	UserValidityFull         UserValidity = "Full"
	UserValidityBarred       UserValidity = "Barred"
)

// Gender in address lookup results.
type Gender string

const (
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
	GenderUnknown Gender = "U"
)

// Defaults applied before sending.
const (
	DefaultTimeToLive   = 120
	MinTimeToLive       = 5
	MaxTimeToLive       = 1440
	DefaultStrexTimeout = 5
	DefaultPriority     = PriorityNormal
	DefaultDeliveryMode = DeliveryModeAtMostOnce
)

// Keyword routes inbound messages on a short number to a forward URL.
type Keyword struct {
	KeywordID        string         `json:"keywordId,omitempty"`
	ShortNumberID    string         `json:"shortNumberId"`
	KeywordText      string         `json:"keywordText"`
	Mode             KeywordMode    `json:"mode"`
	ForwardURL       string         `json:"forwardUrl"`
	Enabled          bool           `json:"enabled"`
	Created          *time.Time     `json:"created,omitempty"`
	LastModified     *time.Time     `json:"lastModified,omitempty"`
	CustomProperties map[string]any `json:"customProperties,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	Aliases          []string       `json:"aliases,omitempty"`
}

// KeywordFilter narrows ListKeywords. Empty fields are not sent.
type KeywordFilter struct {
	ShortNumberID string
	KeywordText   string
	Mode          KeywordMode
	Tag           string
}

// StrexData attaches a Strex payment to an out-message.
type StrexData struct {
	MerchantID  string  `json:"merchantId"`
	ServiceCode string  `json:"serviceCode"`
	InvoiceText string  `json:"invoiceText"`
	Price       float64 `json:"price"`
	Billed      *bool   `json:"billed,omitempty"`
}

// OutMessage is an SMS sent through Target365.
type OutMessage struct {
	TransactionID      string             `json:"transactionId,omitempty"`
	SessionID          string             `json:"sessionId,omitempty"`
	CorrelationID      string             `json:"correlationId,omitempty"`
	KeywordID          string             `json:"keywordId,omitempty"`
	Sender             string             `json:"sender"`
	Recipient          string             `json:"recipient"`
	Content            string             `json:"content"`
	Strex              *StrexData         `json:"strex,omitempty"`
	SendTime           *time.Time         `json:"sendTime,omitempty"`
	TimeToLive         int                `json:"timeToLive,omitempty"`
	Priority           Priority           `json:"priority,omitempty"`
	DeliveryMode       DeliveryMode       `json:"deliveryMode,omitempty"`
	DeliveryReportURL  string             `json:"deliveryReportUrl,omitempty"`
	LastModified       *time.Time         `json:"lastModified,omitempty"`
	Created            *time.Time         `json:"created,omitempty"`
	StatusCode         StatusCode         `json:"statusCode,omitempty"`
	DetailedStatusCode DetailedStatusCode `json:"detailedStatusCode,omitempty"`
	AllowUnicode       *bool              `json:"allowUnicode,omitempty"`
	Delivered          *bool              `json:"delivered,omitempty"`
	OperatorID         string             `json:"operatorId,omitempty"`
	SmscTransactionID  string             `json:"smscTransactionId,omitempty"`
	SmscMessageParts   int                `json:"smscMessageParts,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
	Properties         map[string]any     `json:"properties,omitempty"`
}

// withDefaults returns a copy of m with zero TimeToLive, Priority and
// DeliveryMode replaced by their defaults.
func (m OutMessage) withDefaults() OutMessage {
	if m.TimeToLive == 0 {
		m.TimeToLive = DefaultTimeToLive
	}

	if m.Priority == "" {
		m.Priority = DefaultPriority
	}

	if m.DeliveryMode == "" {
		m.DeliveryMode = DefaultDeliveryMode
	}

	return m
}

// InMessage is an SMS received on a short number.
type InMessage struct {
	TransactionID string         `json:"transactionId,omitempty"`
	KeywordID     string         `json:"keywordId,omitempty"`
	Sender        string         `json:"sender"`
	Recipient     string         `json:"recipient"`
	Content       string         `json:"content"`
	IsStopMessage *bool          `json:"isStopMessage,omitempty"`
	Created       *time.Time     `json:"created,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Properties    map[string]any `json:"properties,omitempty"`
}

// DeliveryReport is posted to an out-message's deliveryReportUrl.
type DeliveryReport struct {
	CorrelationID      string             `json:"correlationId,omitempty"`
	TransactionID      string             `json:"transactionId,omitempty"`
	Price              *float64           `json:"price,omitempty"`
	Sender             string             `json:"sender,omitempty"`
	Recipient          string             `json:"recipient,omitempty"`
	OperatorID         string             `json:"operatorId,omitempty"`
	StatusCode         StatusCode         `json:"statusCode,omitempty"`
	DetailedStatusCode DetailedStatusCode `json:"detailedStatusCode,omitempty"`
	Delivered          *bool              `json:"delivered,omitempty"`
	Billed             *bool              `json:"billed,omitempty"`
	SmscTransactionID  string             `json:"smscTransactionId,omitempty"`
	SmscMessageParts   int                `json:"smscMessageParts,omitempty"`
}

// LookupResult is an address lookup answer for a phone number.
type LookupResult struct {
	Created      *time.Time `json:"created,omitempty"`
	Msisdn       string     `json:"msisdn,omitempty"`
	Landline     string     `json:"landline,omitempty"`
	FirstName    string     `json:"firstName,omitempty"`
	MiddleName   string     `json:"middleName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	CompanyName  string     `json:"companyName,omitempty"`
	CompanyOrgNo string     `json:"companyOrgNo,omitempty"`
	StreetName   string     `json:"streetName,omitempty"`
	StreetNumber string     `json:"streetNumber,omitempty"`
	StreetLetter string     `json:"streetLetter,omitempty"`
	ZipCode      string     `json:"zipCode,omitempty"`
	City         string     `json:"city,omitempty"`
	Gender       Gender     `json:"gender,omitempty"`
	DateOfBirth  string     `json:"dateOfBirth,omitempty"`
	Age          *int       `json:"age,omitempty"`
	DeceasedDate string     `json:"deceasedDate,omitempty"`
}

// PublicKey is a named public key registered with Target365.
type PublicKey struct {
	Name            string     `json:"name"`
	PublicKeyString string     `json:"publicKeyString"`
	SignAlgo        string     `json:"signAlgo"`
	HashAlgo        string     `json:"hashAlgo,omitempty"`
	Created         *time.Time `json:"created,omitempty"`
	LastModified    *time.Time `json:"lastModified,omitempty"`
	NotUsableBefore *time.Time `json:"notUsableBefore,omitempty"`
	Expiry          *time.Time `json:"expiry,omitempty"`
}

// UsableAt reports whether t lies within the key's validity period.
func (k *PublicKey) UsableAt(t time.Time) bool {
	if k.NotUsableBefore != nil && t.Before(*k.NotUsableBefore) {
		return false
	}

	if k.Expiry != nil && !t.Before(*k.Expiry) {
		return false
	}

	return true
}

// StrexMerchantID is a Strex merchant registration.
type StrexMerchantID struct {
	MerchantID    string `json:"merchantId"`
	ShortNumberID string `json:"shortNumberId"`
	Password      string `json:"password,omitempty"`
}

// StrexOneTimePassword requests a one-time password SMS for a Strex purchase.
type StrexOneTimePassword struct {
	TransactionID string `json:"transactionId"`
	MerchantID    string `json:"merchantId"`
	Recipient     string `json:"recipient"`
	Sender        string `json:"sender,omitempty"`
	Recurring     bool   `json:"recurring"`
	Message       string `json:"message,omitempty"`
	Delivered     *bool  `json:"delivered,omitempty"`
}

// StrexTransaction is a Strex payment.
type StrexTransaction struct {
	TransactionID             string             `json:"transactionId"`
	SessionID                 string             `json:"sessionId,omitempty"`
	CorrelationID             string             `json:"correlationId,omitempty"`
	KeywordID                 string             `json:"keywordId,omitempty"`
	MerchantID                string             `json:"merchantId"`
	ServiceCode               string             `json:"serviceCode"`
	BusinessModel             string             `json:"businessModel,omitempty"`
	Age                       int                `json:"age,omitempty"`
	IsRestricted              bool               `json:"isRestricted,omitempty"`
	SmsConfirmation           *bool              `json:"smsConfirmation,omitempty"`
	InvoiceText               string             `json:"invoiceText"`
	Price                     float64            `json:"price"`
	Timeout                   int                `json:"timeout,omitempty"`
	PreAuthServiceID          string             `json:"preAuthServiceId,omitempty"`
	PreAuthServiceDescription string             `json:"preAuthServiceDescription,omitempty"`
	ShortNumber               string             `json:"shortNumber"`
	Recipient                 string             `json:"recipient,omitempty"`
	Content                   string             `json:"content,omitempty"`
	OneTimePassword           string             `json:"oneTimePassword,omitempty"`
	DeliveryMode              DeliveryMode       `json:"deliveryMode,omitempty"`
	Tags                      []string           `json:"tags,omitempty"`
	Properties                map[string]any     `json:"properties,omitempty"`
	Created                   *time.Time         `json:"created,omitempty"`
	LastModified              *time.Time         `json:"lastModified,omitempty"`
	StatusCode                StatusCode         `json:"statusCode,omitempty"`
	DetailedStatusCode        DetailedStatusCode `json:"detailedStatusCode,omitempty"`
	StatusDescription         string             `json:"statusDescription,omitempty"`
	Billed                    *bool              `json:"billed,omitempty"`
	ResultCode                string             `json:"resultCode,omitempty"`
	ResultDescription         string             `json:"resultDescription,omitempty"`
}

// OneClickConfig configures a Strex one-click payment page.
type OneClickConfig struct {
	ConfigID             string     `json:"configId"`
	Created              *time.Time `json:"created,omitempty"`
	LastModified         *time.Time `json:"lastModified,omitempty"`
	ShortNumber          string     `json:"shortNumber"`
	MerchantID           string     `json:"merchantId"`
	ServiceCode          string     `json:"serviceCode"`
	BusinessModel        string     `json:"businessModel,omitempty"`
	Age                  int        `json:"age,omitempty"`
	IsRestricted         bool       `json:"isRestricted,omitempty"`
	InvoiceText          string     `json:"invoiceText"`
	Price                float64    `json:"price"`
	Timeout              int        `json:"timeout,omitempty"`
	IsRecurring          bool       `json:"isRecurring,omitempty"`
	RedirectURL          string     `json:"redirectUrl"`
	OnlineText           string     `json:"onlineText,omitempty"`
	OfflineText          string     `json:"offlineText,omitempty"`
	SubscriptionPrice    *float64   `json:"subscriptionPrice,omitempty"`
	SubscriptionInterval string     `json:"subscriptionInterval,omitempty"`
	SubscriptionStartSms string     `json:"subscriptionStartSms,omitempty"`
}

// withDefaults returns a copy of c with a zero Timeout replaced by
// DefaultStrexTimeout.
func (c OneClickConfig) withDefaults() OneClickConfig {
	if c.Timeout == 0 {
		c.Timeout = DefaultStrexTimeout
	}

	return c
}

// withDefaults returns a copy of t with zero Timeout and DeliveryMode
// replaced by their defaults.
func (t StrexTransaction) withDefaults() StrexTransaction {
	if t.Timeout == 0 {
		t.Timeout = DefaultStrexTimeout
	}

	if t.DeliveryMode == "" {
		t.DeliveryMode = DefaultDeliveryMode
	}

	return t
}
