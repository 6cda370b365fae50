// Package behavior holds the small game patterns demos share: capped and
// wave spawners, speed renormalisation, edge wrap and bounce,
// drag-and-return, cooldowns, and level timers. Everything runs on a scene's
// Clock and Tweens, so it is deterministic under Scene.Step.
package behavior
