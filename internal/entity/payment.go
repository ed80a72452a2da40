package domain

// Payment states. The only transition is pending -> completed, applied
// as a conditional update so duplicate webhook deliveries cannot
// double-settle.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// TrackingCodePrefix is kept from the original system; codes look like
// PED-1700000000000-A1B2C.
const TrackingCodePrefix = "PED-"
