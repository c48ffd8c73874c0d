package domain

// ContactProfile is the locally saved user record used for notification targeting
// and for filtering the user's own appointments.
type ContactProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	EmailNotif bool   `json:"emailNotif"`
	SmsNotif   bool   `json:"smsNotif"`
}

func (p ContactProfile) HasContact() bool {
	return p.Email != "" || p.Phone != ""
}

func (p ContactProfile) WantsEmail() bool {
	return p.Email != "" && p.EmailNotif
}

func (p ContactProfile) WantsSMS() bool {
	return p.Phone != "" && p.SmsNotif
}
