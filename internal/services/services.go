// package services defines the HTTP client for the CTMS contact API
// and the wire types it exchanges.
//
// The API itself (FastAPI + Postgres) is an external collaborator; this
// package only constructs and consumes its JSON representations.
package services

// TokenResponse is the decoded body of a successful POST /token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// NewsletterSubscription is a single newsletter state for a contact,
// used both in PATCH payloads and in PATCH response bodies.
type NewsletterSubscription struct {
	Name       string `json:"name"`
	Subscribed bool   `json:"subscribed"`
}

// ContactPatch is the request body for PATCH /ctms/{email_id}.
type ContactPatch struct {
	Newsletters []NewsletterSubscription `json:"newsletters"`
}

// EmailIdentity is the email block of a contact response. Only the
// contact key is consumed here; the API returns more fields.
type EmailIdentity struct {
	EmailID string `json:"email_id"`
}

// PatchResponse is the decoded body of a successful PATCH /ctms/{email_id}.
type PatchResponse struct {
	Email       EmailIdentity            `json:"email"`
	Newsletters []NewsletterSubscription `json:"newsletters"`
}

// IdentityRecord is one element of the DELETE /ctms/{primary_email}
// response: the identity keys of a deleted contact.
type IdentityRecord struct {
	EmailID         string `json:"email_id"`
	PrimaryEmail    string `json:"primary_email"`
	BasketToken     string `json:"basket_token"`
	SFDCID          string `json:"sfdc_id"`
	MofoContactID   string `json:"mofo_contact_id"`
	MofoEmailID     string `json:"mofo_email_id"`
	AmoUserID       string `json:"amo_user_id"`
	FxAID           string `json:"fxa_id"`
	FxAPrimaryEmail string `json:"fxa_primary_email"`
}

// SubscribedNewsletters filters a PATCH response to the names of
// newsletters the contact is currently subscribed to, preserving the
// order the API returned them in.
func (p *PatchResponse) SubscribedNewsletters() []string {
	names := make([]string, 0, len(p.Newsletters))
	for _, n := range p.Newsletters {
		if n.Subscribed {
			names = append(names, n.Name)
		}
	}
	return names
}
