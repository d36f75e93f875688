// Package ecs draws [Donburi] entities through a spritebatch.Batcher.
//
// Entities carrying both [Sprite] and [Transform] are drawn by [DrawSprites]
// in ascending Layer order. Within a layer, sprites are grouped by texture
// so the batcher can merge them into as few runs as possible; overlapping
// sprites that share a layer therefore have no defined order.
//
// After each frame, [PublishStats] queues the batcher's frame statistics as
// a [StatsEventType] event for systems that want them.
//
// Usage:
//
//	batch.Begin()
//	ecs.DrawSprites(world, batch)
//	batch.End()
//	ecs.PublishStats(world, batch)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
