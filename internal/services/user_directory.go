package services

import (
	"time"

	"schoolPortal/internal/logging"
	"schoolPortal/internal/models"
	"schoolPortal/internal/records"
	"schoolPortal/internal/storage"
)

// UsersKey holds the user collection.
const UsersKey = "users"

// Clock returns the current time.
type Clock func() time.Time

// UserDirectory manages login accounts. Email is not unique: lookups by
// email return the first match in storage order.
type UserDirectory struct {
	users *records.Sequence[models.User]
	now   Clock
	log   *logging.Logger
}

func NewUserDirectory(kv storage.KV, now Clock, log *logging.Logger) *UserDirectory {
	return &UserDirectory{
		users: records.NewSequence(kv, UsersKey,
			func(u models.User) int { return u.ID },
			func(u *models.User, id int) { u.ID = id }),
		now: now,
		log: log,
	}
}

// Initialize seeds the demo accounts when no user collection exists.
func (d *UserDirectory) Initialize() error {
	wrote, err := d.users.Initialize(DefaultUsers(d.now()))
	if wrote {
		d.log.WithField("key", UsersKey).Info("Seeded default users")
	}
	return err
}

func (d *UserDirectory) All() ([]models.User, error) {
	return d.users.All()
}

func (d *UserDirectory) Get(id int) (models.User, bool, error) {
	return d.users.Get(id)
}

func (d *UserDirectory) FindByEmail(email string) (models.User, bool, error) {
	return d.users.Find(func(u models.User) bool { return u.Email == email })
}

// FindByCredentials matches email and password exactly.
func (d *UserDirectory) FindByCredentials(email, password string) (models.User, bool, error) {
	return d.users.Find(func(u models.User) bool {
		return u.Email == email && u.Password == password
	})
}

// Create stores a new account with no last access and returns its id.
func (d *UserDirectory) Create(in models.NewUser) (int, error) {
	return d.users.Insert(models.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Role:      in.Role,
		CreatedAt: d.now(),
	})
}

func (d *UserDirectory) Update(id int, patch models.UserPatch) (bool, error) {
	return d.users.Update(id, patch.Apply)
}

func (d *UserDirectory) Delete(id int) (bool, error) {
	return d.users.Delete(id)
}

// DeleteByEmail removes the first account with the email. A missing account
// is reported as false, not as an error.
func (d *UserDirectory) DeleteByEmail(email string) (bool, error) {
	_, ok, err := d.users.DeleteFirst(func(u models.User) bool { return u.Email == email })
	return ok, err
}
