package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Secret holds a sensitive string. It prints masked so it never reaches logs,
// but marshals its real value because the sealed token payload needs it.
type Secret struct {
	value string
}

func NewSecret(value string) Secret {
	return Secret{value: value}
}

func (s Secret) String() string {
	return "*****"
}

func (s Secret) Value() string {
	return s.value
}

func (s Secret) IsEmpty() bool {
	return s.value == ""
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &s.value); err != nil {
		return fmt.Errorf("unmarshal secret: %w", err)
	}
	return nil
}

// AuthToken carries a caller's district credentials plus the upstream session
// cookie. It is the plaintext of the encrypted bearer token.
type AuthToken struct {
	Username    string `json:"username"`
	Password    Secret `json:"password"`
	Cookie      string `json:"cookie,omitempty"`
	Expiry      int64  `json:"expiry,string"` // unix millis
	DistrictURL string `json:"district_url"`
}

// NewAuthToken builds a token for freshly supplied credentials.
func NewAuthToken(username, password, districtURL string, ttl time.Duration, now time.Time) *AuthToken {
	return &AuthToken{
		Username:    username,
		Password:    NewSecret(password),
		Expiry:      now.Add(ttl).UnixMilli(),
		DistrictURL: districtURL,
	}
}

// IsEmpty reports whether either half of the credential pair is missing.
func (t *AuthToken) IsEmpty() bool {
	return t == nil || t.Username == "" || t.Password.IsEmpty()
}

// Expired reports whether now is past the token's expiry.
func (t *AuthToken) Expired(now time.Time) bool {
	return now.UnixMilli() > t.Expiry
}

// Clone returns a copy that can be compared against after an upstream call.
func (t *AuthToken) Clone() *AuthToken {
	c := *t
	return &c
}

// Equal compares every field, including the secret.
func (t *AuthToken) Equal(o *AuthToken) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Username == o.Username &&
		t.Password.Value() == o.Password.Value() &&
		t.Cookie == o.Cookie &&
		t.Expiry == o.Expiry &&
		t.DistrictURL == o.DistrictURL
}
