package service

import (
	"time"

	"github.com/sharetube/watchparty/internal/domain"
	"github.com/sharetube/watchparty/internal/repository/room"
)

func toRepoVideo(ref domain.MediaRef) room.Video {
	return room.Video{
		Id:        ref.Id,
		Title:     ref.Title,
		Thumbnail: ref.Thumbnail,
		Artist:    ref.Artist,
		Provider:  string(ref.Provider),
	}
}

func fromRepoVideo(v room.Video) domain.MediaRef {
	return domain.MediaRef{
		Id:        v.Id,
		Title:     v.Title,
		Thumbnail: v.Thumbnail,
		Artist:    v.Artist,
		Provider:  domain.Provider(v.Provider),
	}
}

func toRepoRoom(rm *domain.Room) room.Room {
	var currentItem *room.Video
	if rm.Player.CurrentItem != nil {
		v := toRepoVideo(*rm.Player.CurrentItem)
		currentItem = &v
	}

	entries := rm.Playlist.AsList()
	queue := make([]room.QueueEntry, 0, len(entries))
	for _, entry := range entries {
		queue = append(queue, room.QueueEntry{
			EntryId: entry.EntryId,
			Video:   toRepoVideo(entry.MediaRef),
			AddedBy: entry.AddedBy,
		})
	}

	return room.Room{
		Id:           rm.Id,
		CurrentItem:  currentItem,
		IsPlaying:    rm.Player.IsPlaying,
		Position:     rm.Player.Position,
		LastUpdate:   rm.Player.LastUpdate.UnixMilli(),
		LastActivity: rm.LastActivity.UnixMilli(),
		Queue:        queue,
	}
}

func fromRepoRoom(rec room.Room, playlistLimit int) *domain.Room {
	player := domain.Player{
		IsPlaying:  rec.IsPlaying,
		Position:   rec.Position,
		LastUpdate: time.UnixMilli(rec.LastUpdate),
	}
	if rec.CurrentItem != nil {
		item := fromRepoVideo(*rec.CurrentItem)
		player.CurrentItem = &item
	}

	queue := make([]domain.QueueEntry, 0, len(rec.Queue))
	for _, entry := range rec.Queue {
		queue = append(queue, domain.QueueEntry{
			EntryId:  entry.EntryId,
			MediaRef: fromRepoVideo(entry.Video),
			AddedBy:  entry.AddedBy,
		})
	}

	return domain.RestoreRoom(rec.Id, player, queue, playlistLimit, time.UnixMilli(rec.LastActivity))
}
