package services

import (
	"gascrm-backend/internal/models"
)

// ResolveVisibleClients filters the full client set down to what the acting
// user is permitted to see. Pure function of its inputs.
//
// Rules:
//   - sales rep: only clients assigned to them (matched on the stable
//     assigned_to_id, never the display name)
//   - admin with a "viewing as" override naming a known active sales rep:
//     that rep's clients, exactly as the rep would see them
//   - admin otherwise: everything, unfiltered
//
// An override that does not resolve to a known active sales rep is silently
// ignored and the admin sees the unfiltered set.
func ResolveVisibleClients(all []*models.Client, current *models.User, viewingAsID string, users []*models.User) []*models.Client {
	if current == nil {
		return nil
	}

	if current.Role == models.RoleSales {
		return filterByAssignee(all, current.ID)
	}

	if current.Role != models.RoleAdmin {
		return nil
	}

	if viewingAsID != "" {
		if rep := findActiveSalesRep(users, viewingAsID); rep != nil {
			return filterByAssignee(all, rep.ID)
		}
		// invalid override: fall through to the unfiltered admin view
	}

	return all
}

// VisibilityScope returns the cache scope key for the acting user: the rep
// id whose clients are visible, or "all" for an unfiltered admin view.
func VisibilityScope(current *models.User, viewingAsID string, users []*models.User) string {
	if current == nil {
		return ""
	}
	if current.Role == models.RoleSales {
		return current.ID
	}
	if current.Role == models.RoleAdmin && viewingAsID != "" {
		if rep := findActiveSalesRep(users, viewingAsID); rep != nil {
			return rep.ID
		}
	}
	return "all"
}

func filterByAssignee(all []*models.Client, userID string) []*models.Client {
	visible := make([]*models.Client, 0, len(all))
	for _, c := range all {
		if c.AssignedToID == userID {
			visible = append(visible, c)
		}
	}
	return visible
}

func findActiveSalesRep(users []*models.User, id string) *models.User {
	for _, u := range users {
		if u.ID == id && u.Role == models.RoleSales && u.IsActive {
			return u
		}
	}
	return nil
}
