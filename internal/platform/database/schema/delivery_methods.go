// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package schema

// DeliveryMethodsTable represents the 'deliverymethods' table
type DeliveryMethodsTable struct {
	Table                         string
	UserID                        string
	KindleEmail                   string
	KindleEmailVerified           string
	KindleEmailEnabled            string
	KindleEmailVerificationCode   string
	KindleEmailVerificationCodeAt string
	PushoverKey                   string
	PushoverKeyVerified           string
	PushoverEnabled               string
	PushoverVerificationCode      string
	PushoverVerificationCodeAt    string
	CreatedAt                     string
	UpdatedAt                     string
}

// DeliveryMethods is the schema definition for deliverymethods
var DeliveryMethods = DeliveryMethodsTable{
	Table:                         "deliverymethods",
	UserID:                        "userid",
	KindleEmail:                   "kindleemail",
	KindleEmailVerified:           "kindleemailverified",
	KindleEmailEnabled:            "kindleemailenabled",
	KindleEmailVerificationCode:   "kindleemailverificationcode",
	KindleEmailVerificationCodeAt: "kindleemailverificationcodeat",
	PushoverKey:                   "pushoverkey",
	PushoverKeyVerified:           "pushoverkeyverified",
	PushoverEnabled:               "pushoverenabled",
	PushoverVerificationCode:      "pushoververificationcode",
	PushoverVerificationCodeAt:    "pushoververificationcodeat",
	CreatedAt:                     "createdat",
	UpdatedAt:                     "updatedat",
}

func (t DeliveryMethodsTable) Columns() []string {
	return []string{
		t.UserID, t.KindleEmail, t.KindleEmailVerified, t.KindleEmailEnabled,
		t.KindleEmailVerificationCode, t.KindleEmailVerificationCodeAt,
		t.PushoverKey, t.PushoverKeyVerified, t.PushoverEnabled,
		t.PushoverVerificationCode, t.PushoverVerificationCodeAt,
		t.CreatedAt, t.UpdatedAt,
	}
}
