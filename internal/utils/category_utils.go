package utils

import (
	"github.com/JoaoOliveiraaa/minishop/internal/db"
	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

// CategoryTreeIDs returns the ids of a store's category and all of its
// descendants. The store scope keeps one tenant's tree from leaking
// into another's even if parent ids collide.
func CategoryTreeIDs(storeID, rootID uint) ([]uint, error) {
	var result []uint
	result = append(result, rootID)

	queue := []uint{rootID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var children []models.Category
		err := db.DB.Where("store_id = ? AND parent_id = ?", storeID, current).Find(&children).Error
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			result = append(result, child.ID)
			queue = append(queue, child.ID)
		}
	}

	return result, nil
}
