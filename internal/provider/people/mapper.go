package people

import (
	"fmt"

	peopleapi "google.golang.org/api/people/v1"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/provider"
)

const systemGroupType = "SYSTEM_CONTACT_GROUP"

// mapContactGroup converts a People API ContactGroup to a domain Group.
func mapContactGroup(g *peopleapi.ContactGroup) (domain.Group, error) {
	if g == nil || g.ResourceName == "" {
		return domain.Group{}, fmt.Errorf("%w: contact group without resource name", provider.ErrMalformedResponse)
	}

	title := g.FormattedName
	if title == "" {
		title = g.Name
	}

	return domain.Group{
		ID:     g.ResourceName,
		Title:  title,
		System: g.GroupType == systemGroupType || domain.IsSystemGroup(g.ResourceName),
	}, nil
}
