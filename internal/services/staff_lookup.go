package services

import (
	"context"
	"errors"

	"hospitality_backend/internal/repositories"
)

// actorStaffID returns the caller's staff id, or nil for accounts without a
// staff record (the bootstrap superuser).
func actorStaffID(ctx context.Context, exec repositories.SQLExecutor, staffRepo repositories.StaffRepository, actor Actor) (*int64, error) {
	staff, err := staffRepo.GetStaffMemberByUserID(ctx, exec, actor.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, storageError(err, "loading caller staff record")
	}
	return &staff.ID, nil
}
