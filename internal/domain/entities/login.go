package entities

// LoginType identifies the identity provider a login id belongs to.
type LoginType int

const (
	LoginFacebook  LoginType = 1
	LoginGoogle    LoginType = 2
	LoginUserToken LoginType = 3
	LoginEmail     LoginType = 4
	LoginSMS       LoginType = 5
	LoginApple     LoginType = 6
)

// Account types as stored in the account_info table.
const (
	AccountTypeUnknown  = 0
	AccountTypeGuest    = 1
	AccountTypeFacebook = 2
	AccountTypeApple    = 3
	AccountTypeHuawei   = 4
	AccountTypeGoogle   = 5
)

func (t LoginType) Valid() bool {
	return t >= LoginFacebook && t <= LoginApple
}

// RequiresCode reports whether the provider needs a verification code.
func (t LoginType) RequiresCode() bool {
	return t == LoginEmail || t == LoginSMS
}

// AccountType maps a login type onto account_info.account_type. Facebook logins
// resolve through the player table instead and return AccountTypeUnknown.
func (t LoginType) AccountType() int {
	switch t {
	case LoginGoogle:
		return AccountTypeGoogle
	case LoginApple:
		return AccountTypeApple
	default:
		return AccountTypeUnknown
	}
}
