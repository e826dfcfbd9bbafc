package query

import (
	"gorm.io/gorm"

	"pims/models"
)

// activeProjectStatuses are the project statuses that make an active
// assignment count toward current membership.
var activeProjectStatuses = []string{models.ProjectStatusActive, models.ProjectStatusHot}

// CurrentMemberIDs returns the distinct ids of members holding at least one
// active assignment to a project whose status is active or hot. The result is
// recomputed on every call: project status and assignment flags change
// independently, so nothing here may be cached.
func CurrentMemberIDs(db *gorm.DB) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.MemberAssigned{}).
		Distinct().
		Joins("JOIN projects ON projects.id = member_assigned.project_id").
		Where("member_assigned.is_active = ?", true).
		Where("projects.status IN ?", activeProjectStatuses).
		Pluck("member_assigned.member_id", &ids).Error
	return ids, err
}

// PartitionMembers splits all members into the current/past complement. Every
// member lands in exactly one of the two slices.
func PartitionMembers(db *gorm.DB) (current, past []models.Member, err error) {
	ids, err := CurrentMemberIDs(db)
	if err != nil {
		return nil, nil, err
	}

	current = []models.Member{}
	past = []models.Member{}

	if len(ids) == 0 {
		err = db.Order("id").Find(&past).Error
		return current, past, err
	}

	if err = db.Where("id IN ?", ids).Order("id").Find(&current).Error; err != nil {
		return nil, nil, err
	}
	if err = db.Where("id NOT IN ?", ids).Order("id").Find(&past).Error; err != nil {
		return nil, nil, err
	}
	return current, past, nil
}
