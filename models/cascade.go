package models

import "gorm.io/gorm"

// The store is not trusted for FK cascade; deletion order is explicit and
// always runs inside a single transaction so a failed step rolls everything
// back.

// DeleteProjectCascade removes a project and everything hanging off it:
// credentials, activity logs, member assignments and team associations.
// Must be called with a transaction handle.
func DeleteProjectCascade(tx *gorm.DB, projectID uint) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&ProjectCredential{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&ProjectActivity{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&MemberAssigned{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&Project{ID: projectID}).Association("Teams").Clear(); err != nil {
		return err
	}
	return tx.Delete(&Project{}, projectID).Error
}

// DeleteClientCascade deletes a client together with all of its projects and
// their dependents.
func DeleteClientCascade(db *gorm.DB, clientID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var projectIDs []uint
		if err := tx.Model(&Project{}).Where("client_id = ?", clientID).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		for _, id := range projectIDs {
			if err := DeleteProjectCascade(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(&Client{}, clientID).Error
	})
}

// DeleteMemberCascade deletes a member, its assignments and its team links.
func DeleteMemberCascade(db *gorm.DB, memberID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", memberID).Delete(&MemberAssigned{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Member{ID: memberID}).Association("Teams").Clear(); err != nil {
			return err
		}
		return tx.Delete(&Member{}, memberID).Error
	})
}

// DeleteTeamCascade deletes a team and both of its association sets. Members
// and projects themselves survive.
func DeleteTeamCascade(db *gorm.DB, teamID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Team{ID: teamID}).Association("Members").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&Team{ID: teamID}).Association("Projects").Clear(); err != nil {
			return err
		}
		return tx.Delete(&Team{}, teamID).Error
	})
}
