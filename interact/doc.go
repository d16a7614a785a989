// Package interact turns raw pointer and key events into gesture
// notifications: hover enter and leave, clicks, double-clicks, item drags
// and frame selection.
//
// The Coordinator is a small state machine:
//
//	Idle ──move over item──▶ Hover ──move off item──▶ Idle
//	Idle|Hover ──down──▶ MouseDownZone
//	MouseDownZone ──up──▶ Idle (click)
//	MouseDownZone ──move past dead zone──▶ DraggingItem | FrameSelecting | Cancelled
//	DraggingItem ──up──▶ Idle (drag end)
//	FrameSelecting ──up──▶ Idle (frame complete)
//	any gesture ──Escape──▶ Cancelled ──up──▶ Idle
//
// Positions are in design coordinates. The coordinator never converts
// between design and host space.
package interact
