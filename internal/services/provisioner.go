package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"event-registrations/internal/models"
	"event-registrations/internal/monitoring"
	"event-registrations/internal/utils"
)

// generatedPasswordLength matches the length of credentials issued to new attendees
const generatedPasswordLength = 12

// RegistrationProvisioner creates attendee accounts and group memberships
type RegistrationProvisioner struct {
	users    UserDirectory
	groups   GroupDirectory
	notifier WelcomeNotifier
	debug    bool

	generatePassword func(length int) (string, error)
	hashPassword     func(password string) (string, error)
}

// NewRegistrationProvisioner creates a provisioner. groups may be nil, which
// disables group creation and membership without error. debug enables
// operator logging of per-attendee failures.
func NewRegistrationProvisioner(users UserDirectory, groups GroupDirectory, notifier WelcomeNotifier, debug bool) *RegistrationProvisioner {
	return &RegistrationProvisioner{
		users:            users,
		groups:           groups,
		notifier:         notifier,
		debug:            debug,
		generatePassword: utils.GeneratePassword,
		hashPassword:     utils.HashPassword,
	}
}

// GroupsEnabled reports whether a group directory is available
func (p *RegistrationProvisioner) GroupsEnabled() bool {
	return p.groups != nil
}

// ProvisionUser returns the account of an attendee, creating it when no
// account uses the email yet. Existing accounts are returned unchanged. A new
// account gets a random credential, the attendee's names and a welcome
// notification. When the account cannot be created the error wraps
// models.ErrProvisioningFailed and the returned id is 0.
func (p *RegistrationProvisioner) ProvisionUser(name, lastName, email string) (int, error) {
	existing, err := p.users.GetByEmail(email)
	if err == nil && existing != nil {
		monitoring.TrackProvisioning(monitoring.ProvisionExisting)
		return existing.ID, nil
	}
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		monitoring.TrackProvisioning(monitoring.ProvisionFailed)
		return 0, fmt.Errorf("%w: failed to look up %s: %v", models.ErrProvisioningFailed, email, err)
	}

	password, err := p.generatePassword(generatedPasswordLength)
	if err != nil {
		monitoring.TrackProvisioning(monitoring.ProvisionFailed)
		return 0, fmt.Errorf("%w: %v", models.ErrProvisioningFailed, err)
	}

	hash, err := p.hashPassword(password)
	if err != nil {
		monitoring.TrackProvisioning(monitoring.ProvisionFailed)
		return 0, fmt.Errorf("%w: %v", models.ErrProvisioningFailed, err)
	}

	user, err := p.users.Create(&models.UserCreateRequest{
		Email:    email,
		Password: hash,
		Role:     models.RoleAttendee,
	})
	if err != nil {
		monitoring.TrackProvisioning(monitoring.ProvisionFailed)
		return 0, fmt.Errorf("%w: failed to create account for %s: %v", models.ErrProvisioningFailed, email, err)
	}

	if _, err := p.users.UpdateNames(user.ID, &models.UserNamesUpdate{FirstName: name, LastName: lastName}); err != nil {
		p.debugf("Failed to set names on user %d: %v", user.ID, err)
	}

	userName := strings.TrimSpace(name + " " + lastName)
	if err := p.notifier.SendWelcomeEmail(email, userName); err != nil {
		p.debugf("Failed to send welcome email to %s: %v", email, err)
	}
	if err := p.notifier.SendNewUserAdminNotice(email, userName); err != nil {
		p.debugf("Failed to send new user notice for %s: %v", email, err)
	}

	monitoring.TrackProvisioning(monitoring.ProvisionCreated)
	return user.ID, nil
}

// CreateOrGetGroup returns the id of the named group, creating it if needed.
// Returns 0 and no error when groups are disabled.
func (p *RegistrationProvisioner) CreateOrGetGroup(groupName string) (int, error) {
	if p.groups == nil {
		return 0, nil
	}

	group, err := p.groups.GetGroupByName(groupName)
	if err == nil && group != nil {
		return group.ID, nil
	}
	if err != nil && !errors.Is(err, models.ErrGroupNotFound) {
		return 0, fmt.Errorf("failed to look up group %q: %w", groupName, err)
	}

	group, err = p.groups.CreateGroup(groupName)
	if err != nil {
		return 0, fmt.Errorf("failed to create group %q: %w", groupName, err)
	}
	return group.ID, nil
}

// AddMemberToGroup adds a user to a group. No-op when groups are disabled.
func (p *RegistrationProvisioner) AddMemberToGroup(groupID, userID int) error {
	if p.groups == nil {
		return nil
	}

	if err := p.groups.AddUserToGroup(groupID, userID); err != nil {
		monitoring.TrackGroupMembership("failed")
		return fmt.Errorf("failed to add user %d to group %d: %w", userID, groupID, err)
	}
	monitoring.TrackGroupMembership("added")
	return nil
}

// ProvisionAttendees provisions every record of one cart line and adds the
// resulting accounts to the line's group. Failures are isolated per attendee;
// the ids of the accounts that could be provisioned are returned.
func (p *RegistrationProvisioner) ProvisionAttendees(groupName string, records []models.AttendeeRecord) []int {
	userIDs := make([]int, 0, len(records))
	for _, record := range records {
		userID, err := p.ProvisionUser(record.Name, record.LastName, record.Email)
		if err != nil {
			p.debugf("Skipping attendee #%d: %v", record.Slot.GlobalIndex, err)
			continue
		}
		userIDs = append(userIDs, userID)
	}

	if p.groups == nil || len(userIDs) == 0 {
		return userIDs
	}

	groupID, err := p.CreateOrGetGroup(groupName)
	if err != nil || groupID == 0 {
		p.debugf("Skipping group membership for %q: %v", groupName, err)
		return userIDs
	}

	for _, userID := range userIDs {
		if err := p.AddMemberToGroup(groupID, userID); err != nil {
			p.debugf("%v", err)
		}
	}
	return userIDs
}

func (p *RegistrationProvisioner) debugf(format string, args ...interface{}) {
	if p.debug {
		log.Printf("registrations: "+format, args...)
	}
}
