package domain

// Contact is a reservation's point of contact: a named person, an email
// address in its verification lifecycle, and an optional phone number.
type Contact struct {
	Name  PersonFullName
	Email EmailAddress
	Phone *PhoneNumber
}

func NewContact(name PersonFullName, email EmailAddress) Contact {
	return Contact{Name: name, Email: email}
}

// WithPhone returns a copy of the Contact with phone attached.
func (c Contact) WithPhone(phone PhoneNumber) Contact {
	c.Phone = &phone
	return c
}

func (c Contact) PhoneIsPresent() bool { return c.Phone != nil }

func (c Contact) EmailIsVerified() bool { return c.Email.IsVerified() }

func (c Contact) EmailVerifyChallenge() string { return c.Email.VerifyChallenge() }

// VerifyEmail applies challenge to the contact's email address.
func (c Contact) VerifyEmail(challenge string) (Contact, error) {
	email, err := c.Email.Verify(challenge)
	if err != nil {
		return c, err
	}
	c.Email = email
	return c, nil
}
