package entity

// ContactInfo is the customer data collected at checkout. It is transient:
// never persisted beyond the in-flight form state. Phone must be exactly
// 11 digits (local mobile number format).
type ContactInfo struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required,len=11,numeric"`
}
