package store

import (
	"crypto/subtle"
	"sync"

	"github.com/mzhuravlev/shopcourse/internal/platform/apierr"
	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
	"github.com/mzhuravlev/shopcourse/internal/types"
)

// PasswordValidator is a predicate over the raw password. Registration fails
// when any validator rejects it.
type PasswordValidator func(password string) bool

func PasswordIsLongerThan8(password string) bool {
	return len(password) > 8
}

func DefaultPasswordValidators() []PasswordValidator {
	return []PasswordValidator{PasswordIsLongerThan8}
}

// UserStore owns the user map plus the username index. The username
// uniqueness check and the insert happen under one lock acquisition, so two
// concurrent registrations of the same name cannot both succeed.
type UserStore struct {
	mu         sync.Mutex
	log        *logger.Logger
	validators []PasswordValidator
	nextUID    int64
	byID       map[int64]*types.User
	byUsername map[string]int64
}

// NewUserStore uses the default validator list when validators is nil. Pass
// an empty slice to disable password validation.
func NewUserStore(baseLog *logger.Logger, validators []PasswordValidator) *UserStore {
	if validators == nil {
		validators = DefaultPasswordValidators()
	}
	return &UserStore{
		log:        baseLog.With("store", "UserStore"),
		validators: validators,
		byID:       make(map[int64]*types.User),
		byUsername: make(map[string]int64),
	}
}

func (s *UserStore) Register(info types.UserInfo) (types.User, error) {
	for _, valid := range s.validators {
		if !valid(info.Password) {
			return types.User{}, apierr.BadRequest("invalid password")
		}
	}
	if info.Role == "" {
		info.Role = types.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[info.Username]; taken {
		return types.User{}, apierr.Conflict("username is already taken")
	}
	s.nextUID++
	user := &types.User{UID: s.nextUID, Info: info}
	s.byID[user.UID] = user
	s.byUsername[info.Username] = user.UID
	s.log.Debug("user registered", "uid", user.UID, "role", string(info.Role))
	return *user, nil
}

func (s *UserStore) GetByID(uid int64) (types.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[uid]
	if !ok {
		return types.User{}, false
	}
	return *user, true
}

func (s *UserStore) GetByUsername(username string) (types.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uid, ok := s.byUsername[username]
	if !ok {
		return types.User{}, false
	}
	return *s.byID[uid], true
}

// GrantAdmin is idempotent for users that are already admins.
func (s *UserStore) GrantAdmin(uid int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[uid]
	if !ok {
		return apierr.NotFound("user not found")
	}
	user.Info.Role = types.RoleAdmin
	s.log.Info("admin granted", "uid", uid)
	return nil
}

// Authenticate does the plaintext credential compare the course services
// use. The compare is constant-time; nothing else about this is hardened.
func (s *UserStore) Authenticate(username, password string) (types.User, bool) {
	user, ok := s.GetByUsername(username)
	if !ok {
		return types.User{}, false
	}
	if subtle.ConstantTimeCompare([]byte(user.Info.Password), []byte(password)) != 1 {
		return types.User{}, false
	}
	return user, true
}
