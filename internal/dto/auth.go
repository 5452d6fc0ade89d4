package dto

// LoginRequest is the mobile login payload.
type LoginRequest struct {
	UserID   string `json:"userid" binding:"required"`
	Password string `json:"password" binding:"required"`
	DeviceID string `json:"deviceId" binding:"required"`
}

// LoginResponse carries the login outcome. Status is SUCCESS when a token was
// issued, or NEW_DEVICE when the device is unregistered and needs SMS
// verification first.
type LoginResponse struct {
	Status   string `json:"status"`
	Token    string `json:"token,omitempty"`
	CustName string `json:"custName,omitempty"`
	Message  string `json:"message"`
}

// SendCodeRequest asks for a verification SMS for the given login identifier.
// The phone number is resolved server-side and never accepted from the client.
type SendCodeRequest struct {
	UserID string `json:"userid" binding:"required"`
}

// SendCodeResponse reports the masked destination of the verification SMS.
type SendCodeResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	MaskedPhone string `json:"maskedPhone"`
}

// VerifyCodeRequest submits the code the customer received. A successful
// verification rebinds the customer's registered device to DeviceID.
type VerifyCodeRequest struct {
	UserID   string `json:"userid" binding:"required"`
	Code     string `json:"code" binding:"required,len=6,numeric"`
	DeviceID string `json:"deviceId" binding:"required"`
}
