// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth provides the authorization matrix and bearer-token
// identity handling. Every mutating entry point goes through Authorize;
// permission logic lives nowhere else.
package auth

import (
	"github.com/google/uuid"

	"pressadmin/internal/models"
)

// Principal is the authenticated actor performing a request.
type Principal struct {
	ID   uuid.UUID
	Role models.Role
}

// Action is a permission-checked operation.
type Action string

const (
	ActionCreatePost    Action = "post:create"
	ActionAttributePost Action = "post:attribute" // publish under another author's name
	ActionEditPost      Action = "post:edit"
	ActionDeletePost    Action = "post:delete"

	ActionManageTaxonomy Action = "taxonomy:manage" // create/edit category or placement
	ActionDeleteTaxonomy Action = "taxonomy:delete"

	ActionManageUsers    Action = "user:manage" // create/delete/role-change
	ActionEditOwnProfile Action = "user:edit-profile"

	ActionReconcileCounts Action = "admin:reconcile-counts"
)

// Authorize checks whether the principal may perform the action.
// For ownership-scoped actions (post edit, profile edit) owner is the
// resource's owning user ID; pass nil when ownership is irrelevant.
// Returns nil on allow, AuthorizationError on deny.
func Authorize(p Principal, action Action, owner *uuid.UUID) error {
	if allowed(p, action, owner) {
		return nil
	}
	return models.NewAuthorizationError("you are not allowed to perform this action")
}

func allowed(p Principal, action Action, owner *uuid.UUID) bool {
	switch action {
	case ActionCreatePost:
		return p.Role == models.RoleAdmin || p.Role == models.RoleEditor || p.Role == models.RoleAuthor

	case ActionAttributePost:
		return p.Role == models.RoleAdmin || p.Role == models.RoleEditor

	case ActionEditPost:
		if p.Role == models.RoleAdmin || p.Role == models.RoleEditor {
			return true
		}
		// Authors may edit their own posts only.
		return p.Role == models.RoleAuthor && owner != nil && *owner == p.ID

	case ActionDeletePost:
		return p.Role == models.RoleAdmin || p.Role == models.RoleEditor

	case ActionManageTaxonomy:
		return p.Role == models.RoleAdmin || p.Role == models.RoleEditor

	case ActionDeleteTaxonomy:
		return p.Role == models.RoleAdmin

	case ActionManageUsers:
		if p.Role != models.RoleAdmin {
			return false
		}
		// Self-protection: never change your own role or delete your
		// own account, regardless of role.
		return owner == nil || *owner != p.ID

	case ActionEditOwnProfile:
		if p.Role == models.RoleAdmin {
			return true
		}
		return owner != nil && *owner == p.ID

	case ActionReconcileCounts:
		return p.Role == models.RoleAdmin
	}

	return false
}
