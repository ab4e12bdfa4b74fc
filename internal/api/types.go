package api

// Customer mirrors one record of the /customers collection. Optional fields
// are pointers so that "no value" stays distinguishable from an empty string.
type Customer struct {
	ID       string  `json:"id"`
	LegacyID *int64  `json:"legacyId"`
	Name     string  `json:"name"`
	Street   *string `json:"street"`
	ZipCode  *string `json:"zipCode"`
	City     *string `json:"city"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	IsActive bool    `json:"isActive"`
}

// CustomerPatch is the body of a PATCH /customers/{id} request. It contains
// exactly the fields being changed; a nil value clears the field server-side.
type CustomerPatch map[string]any

// CustomerRef is the embedded customer summary on appointment payloads.
type CustomerRef struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	City *string `json:"city"`
}

// Appointment mirrors one entry of /appointments/history.
type Appointment struct {
	ID        string      `json:"id"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Title     string      `json:"title"`
	Customer  CustomerRef `json:"customer"`
}

// DueItem mirrors one entry of /appointments/due: a customer whose next
// inspection is due twelve months after the last one.
type DueItem struct {
	CustomerID    string      `json:"customerId"`
	Customer      CustomerRef `json:"customer"`
	LastStartTime string      `json:"lastStartTime"`
	DueDate       string      `json:"dueDate"`
	Quarter       string      `json:"quarter"`
}
