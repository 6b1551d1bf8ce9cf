package proto

import (
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"google.golang.org/protobuf/types/known/structpb"
)

// Payload keys used inside structpb.Struct messages.
const (
	keyEmail        = "email"
	keyPassword     = "password"
	keyUID          = "uid"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyProvider     = "provider"
	keyIDToken      = "id_token"
	keyToken        = "token"
	keyFields       = "fields"
	keyKey          = "key"
	keyValue        = "value"
	keyStatus       = "status"
)

func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// required fails with common.ErrorValidation naming the first empty key.
func required(kv ...string) error {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			return fmt.Errorf("%w: %s is required", common.ErrorValidation, kv[i])
		}
	}
	return nil
}

func stringStruct(kv ...string) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = structpb.NewStringValue(kv[i+1])
	}
	return &structpb.Struct{Fields: fields}
}

// Credentials is the SignIn / CreateAccount request.
type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) Message() *structpb.Struct {
	return stringStruct(keyEmail, c.Email, keyPassword, c.Password)
}

func CredentialsFrom(s *structpb.Struct) Credentials {
	return Credentials{Email: str(s, keyEmail), Password: str(s, keyPassword)}
}

func (c Credentials) Validate() error {
	return required(keyEmail, c.Email)
}

// Session is returned by every call that authenticates: the uid plus a token pair.
type Session struct {
	UID          string
	AccessToken  string
	RefreshToken string
}

func (s Session) Message() *structpb.Struct {
	return stringStruct(keyUID, s.UID, keyAccessToken, s.AccessToken, keyRefreshToken, s.RefreshToken)
}

func SessionFrom(s *structpb.Struct) Session {
	return Session{
		UID:          str(s, keyUID),
		AccessToken:  str(s, keyAccessToken),
		RefreshToken: str(s, keyRefreshToken),
	}
}

// Validate rejects a session without a uid or an access token.
func (s Session) Validate() error {
	return required(keyUID, s.UID, keyAccessToken, s.AccessToken)
}

// FederatedToken asks the server to trade a provider ID token for a session.
type FederatedToken struct {
	Provider string
	IDToken  string
}

func (f FederatedToken) Message() *structpb.Struct {
	return stringStruct(keyProvider, f.Provider, keyIDToken, f.IDToken)
}

func FederatedTokenFrom(s *structpb.Struct) FederatedToken {
	return FederatedToken{Provider: str(s, keyProvider), IDToken: str(s, keyIDToken)}
}

func (f FederatedToken) Validate() error {
	return required(keyIDToken, f.IDToken)
}

// RefreshTokenMessage carries a refresh token for RefreshToken and SignOut.
func RefreshTokenMessage(token string) *structpb.Struct {
	return stringStruct(keyRefreshToken, token)
}

func RefreshTokenFrom(s *structpb.Struct) string {
	return str(s, keyRefreshToken)
}

// PasswordReset completes a reset started by SendPasswordReset.
type PasswordReset struct {
	Token    string
	Password string
}

func (p PasswordReset) Message() *structpb.Struct {
	return stringStruct(keyToken, p.Token, keyPassword, p.Password)
}

func PasswordResetFrom(s *structpb.Struct) PasswordReset {
	return PasswordReset{Token: str(s, keyToken), Password: str(s, keyPassword)}
}

func (p PasswordReset) Validate() error {
	return required(keyToken, p.Token)
}

// ProfileWrite replaces a whole profile record.
type ProfileWrite struct {
	UID    string
	Fields map[string]any
}

func (p ProfileWrite) Message() (*structpb.Struct, error) {
	fields, err := structpb.NewStruct(p.Fields)
	if err != nil {
		return nil, fmt.Errorf("encode profile fields: %w", err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyUID:    structpb.NewStringValue(p.UID),
		keyFields: structpb.NewStructValue(fields),
	}}, nil
}

func ProfileWriteFrom(s *structpb.Struct) ProfileWrite {
	return ProfileWrite{
		UID:    str(s, keyUID),
		Fields: s.GetFields()[keyFields].GetStructValue().AsMap(),
	}
}

func (p ProfileWrite) Validate() error {
	return required(keyUID, p.UID)
}

// FieldUpdate patches one key of a profile record.
type FieldUpdate struct {
	UID   string
	Key   string
	Value any
}

func (f FieldUpdate) Message() (*structpb.Struct, error) {
	v, err := structpb.NewValue(f.Value)
	if err != nil {
		return nil, fmt.Errorf("encode field %q: %w", f.Key, err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyUID:   structpb.NewStringValue(f.UID),
		keyKey:   structpb.NewStringValue(f.Key),
		keyValue: v,
	}}, nil
}

func FieldUpdateFrom(s *structpb.Struct) FieldUpdate {
	return FieldUpdate{
		UID:   str(s, keyUID),
		Key:   str(s, keyKey),
		Value: s.GetFields()[keyValue].AsInterface(),
	}
}

func (f FieldUpdate) Validate() error {
	return required(keyUID, f.UID, keyKey, f.Key)
}

// ProfileMessage encodes profile fields as the ReadProfile response. A stored
// value structpb cannot carry is reported as common.ErrorCorruptRecord.
func ProfileMessage(fields map[string]any) (*structpb.Struct, error) {
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w: %w", common.ErrorCorruptRecord, err)
	}
	return msg, nil
}

// StatusMessage is the Ping response.
func StatusMessage(status string) *structpb.Struct {
	return stringStruct(keyStatus, status)
}

func StatusFrom(s *structpb.Struct) string {
	return str(s, keyStatus)
}
