package request

type CompanionRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Age        *int   `json:"age,omitempty" validate:"omitempty,min=0,max=120"`
	Gender     string `json:"gender" validate:"required,oneof=M F O"`
	Meal       string `json:"meal,omitempty" validate:"omitempty,oneof=veg nonveg jain"`
	BloodGroup string `json:"blood_group,omitempty" validate:"omitempty,max=5"`
}

type AddOnRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=20"`
}

type CreateBookingRequest struct {
	EventID        string             `json:"event_id" validate:"required,uuid4"`
	PackageID      string             `json:"package_id" validate:"required,uuid4"`
	PrimaryName    string             `json:"primary_name" validate:"required,min=2,max=100"`
	PrimaryGender  string             `json:"primary_gender" validate:"required,oneof=M F O"`
	PrimaryAge     *int               `json:"primary_age,omitempty" validate:"omitempty,min=0,max=120"`
	PrimaryPhone   string             `json:"primary_phone" validate:"required,min=8,max=15"`
	PrimaryEmail   string             `json:"primary_email" validate:"required,email"`
	EmergencyName  string             `json:"emergency_name,omitempty" validate:"omitempty,max=100"`
	EmergencyPhone string             `json:"emergency_phone,omitempty" validate:"omitempty,min=8,max=15"`
	Companions     []CompanionRequest `json:"companions,omitempty" validate:"omitempty,max=19,dive"`
	GuestAges      []int              `json:"guest_ages,omitempty" validate:"omitempty,max=19,dive,min=0,max=120"`
	GuestCount     int                `json:"guest_count,omitempty" validate:"omitempty,min=1,max=20"`
	PropertyID     *string            `json:"property_id,omitempty" validate:"omitempty,uuid4"`
	AddOns         []AddOnRequest     `json:"add_ons,omitempty" validate:"omitempty,max=10,dive"`
}

type CreateOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	PromoCode string `json:"promo_code,omitempty" validate:"omitempty,max=50"`
}
