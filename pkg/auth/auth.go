// Package auth decides who may see shop-wide reports. The allow-list is
// configuration, keyed by the stable numeric Telegram user ID rather than
// a display name.
package auth

// Policy is a static admin allow-list.
type Policy struct {
	admins map[int64]bool
}

func NewPolicy(adminIDs []int64) *Policy {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &Policy{admins: admins}
}

func (p *Policy) IsAdmin(userID int64) bool {
	return p.admins[userID]
}
