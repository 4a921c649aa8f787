package aggregator

import (
	"fmt"
	"sort"

	"github.com/quangdm-dev/socialnews-backend/internal/models"
)

// Fold collapses a window's events into one aggregated notification:
// distinct actors in first-seen order, last write wins for name/avatar.
func Fold(key models.AggregationKey, events []models.RawInteractionEvent) models.AggregatedNotification {
	sorted := make([]models.RawInteractionEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	order := make([]string, 0, len(sorted))
	byID := make(map[string]models.Actor, len(sorted))
	var latest int64
	for _, e := range sorted {
		if _, seen := byID[e.ActorID]; !seen {
			order = append(order, e.ActorID)
		}
		byID[e.ActorID] = models.Actor{
			ID:     e.ActorID,
			Name:   e.ActorName,
			Avatar: e.ActorAvatar,
		}
		if e.Timestamp > latest {
			latest = e.Timestamp
		}
	}

	actors := make([]models.Actor, len(order))
	for i, id := range order {
		actors[i] = byID[id]
	}

	return models.AggregatedNotification{
		PostID:          key.PostID,
		Action:          key.Action,
		TargetUserID:    key.TargetUserID,
		Actors:          actors,
		Count:           len(actors),
		LatestTimestamp: latest,
	}
}

func actionText(action models.NotificationAction) string {
	if action == models.ActionLike {
		return "thích"
	}
	return "bình luận"
}

// FormatMessage builds the notification title and body. The title always
// names the first-seen actor; additional actors only change the count.
func FormatMessage(agg models.AggregatedNotification, postTitle string) (title, body string) {
	first := agg.Actors[0].Name
	act := actionText(agg.Action)

	switch {
	case agg.Count == 1:
		title = fmt.Sprintf("%s %s bài viết của bạn", first, act)
	case agg.Count == 2:
		title = fmt.Sprintf("%s và 1 người khác %s bài viết của bạn", first, act)
	default:
		title = fmt.Sprintf("%s và %d người khác %s bài viết của bạn", first, agg.Count-1, act)
	}
	body = fmt.Sprintf("\"%s\"", postTitle)
	return title, body
}
