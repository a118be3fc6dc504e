package auth

import (
	"crypto/subtle"
	"time"

	"core-nexus/internal/model"
	"core-nexus/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Error codes surfaced to the login form.
const (
	CodeIDTooShort   = "ID_TOO_SHORT"
	CodeKeyTooShort  = "SECURITY_KEY_FAIL"
	CodeAccessDenied = "ACCESS_DENIED_UNAUTHORIZED"
)

// CredentialError carries one of the login error codes plus the message
// shown to the user.
type CredentialError struct {
	Code    string
	Message string
}

func (e *CredentialError) Error() string { return e.Message }

var (
	ErrIDTooShort = &CredentialError{
		Code:    CodeIDTooShort,
		Message: "identifier must be at least 3 characters",
	}
	ErrKeyTooShort = &CredentialError{
		Code:    CodeKeyTooShort,
		Message: "security key must be at least 6 characters",
	}
	ErrAccessDenied = &CredentialError{
		Code:    CodeAccessDenied,
		Message: "access denied: unauthorized credentials",
	}
)

// Session is what a successful login produces. It is never persisted;
// the JWT it is encoded into is the only thing the client holds.
type Session struct {
	StaffID     string   `json:"staff_id,omitempty"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Provider    string   `json:"provider"`
	IsAdmin     bool     `json:"is_admin"`
	IsMaster    bool     `json:"is_master"`
	Permissions []string `json:"permissions"`
}

func (s *Session) HasPermission(perm string) bool {
	for _, p := range s.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// Verifier checks submitted credentials against the master pair and the
// staff collection. MasterID/MasterKey come from the environment; when
// either is empty, master login is disabled.
type Verifier struct {
	Store     *store.Store
	MasterID  string
	MasterKey string
}

// Verify runs the credential check. Shape validation happens before any
// storage access; a malformed identifier never reaches the DB.
func (v *Verifier) Verify(identifier, key string) (*Session, error) {
	if len(identifier) < 3 {
		return nil, ErrIDTooShort
	}
	if len(key) < 6 {
		return nil, ErrKeyTooShort
	}

	if v.masterMatch(identifier, key) {
		return &Session{
			Username:    v.MasterID,
			Role:        "master",
			Provider:    "master",
			IsAdmin:     true,
			IsMaster:    true,
			Permissions: model.AllPermissions(),
		}, nil
	}

	account, err := v.Store.StaffByUsername(identifier)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccessDenied
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(key)) != nil {
		return nil, ErrAccessDenied
	}

	now := time.Now()
	account.LastLogin = &now
	if err := v.Store.SaveStaff(account); err != nil {
		return nil, err
	}

	return &Session{
		StaffID:     account.ID,
		Username:    account.Username,
		Role:        account.Role,
		Provider:    "staff",
		IsAdmin:     true,
		Permissions: account.Permissions,
	}, nil
}

func (v *Verifier) masterMatch(identifier, key string) bool {
	if v.MasterID == "" || v.MasterKey == "" {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(identifier), []byte(v.MasterID)) == 1
	keyOK := subtle.ConstantTimeCompare([]byte(key), []byte(v.MasterKey)) == 1
	return idOK && keyOK
}

// CheckPassword reports whether the plaintext matches the account's
// stored hash.
func CheckPassword(account *model.StaffAccount, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) == nil
}

// SetPassword hashes and stores a new password and bumps the token
// version so outstanding sessions for the account die.
func SetPassword(s *store.Store, account *model.StaffAccount, password string) error {
	hashed, err := model.HashPassword(password)
	if err != nil {
		return err
	}
	account.Password = hashed
	account.TokenVersion++
	return s.SaveStaff(account)
}

// Claims is the JWT payload for a logged-in session.
type Claims struct {
	StaffID      string   `json:"staff_id,omitempty"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	IsMaster     bool     `json:"is_master"`
	Permissions  []string `json:"permissions"`
	TokenVersion int64    `json:"token_version"`
	jwt.RegisteredClaims
}

const sessionTTL = 24 * time.Hour

// IssueToken signs a session into an HS256 JWT.
func IssueToken(session *Session, tokenVersion int64, secret string) (string, error) {
	claims := &Claims{
		StaffID:      session.StaffID,
		Username:     session.Username,
		Role:         session.Role,
		IsMaster:     session.IsMaster,
		Permissions:  session.Permissions,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a JWT and returns its claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// SessionFromClaims rebuilds the session view of a parsed token.
func SessionFromClaims(claims *Claims) *Session {
	return &Session{
		StaffID:     claims.StaffID,
		Username:    claims.Username,
		Role:        claims.Role,
		Provider:    providerFor(claims),
		IsAdmin:     true,
		IsMaster:    claims.IsMaster,
		Permissions: claims.Permissions,
	}
}

func providerFor(claims *Claims) string {
	if claims.IsMaster {
		return "master"
	}
	return "staff"
}
