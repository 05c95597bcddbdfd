// Package telegram implements the Telegram dispatch nodes for tgdispatch.
//
// It provides two workflow nodes built on a shared dispatch core:
//
//   - node.telegram_send posts up to five images to a channel as one
//     sendMediaGroup request, returning the first created message id.
//   - node.telegram_reply posts images or HTML text as a reply. The reply
//     target is either a literal message id or is resolved by polling
//     getUpdates for a message forwarded from a caller-supplied marker.
//
// Images arrive as normalized float RGB rasters (pkg/imaging) and are
// encoded to PNG attachments named img0.png, img1.png, ... in input order.
// A non-empty caption rides on the first media item only.
//
// Replies always set allow_sending_without_reply, so a vanished target
// degrades to a plain message instead of failing the call. Delivery calls
// are never retried here; both nodes are always-stale so hosts never cache
// their results.
//
// No external Telegram library is used; the module communicates with the
// Bot API via raw net/http: urlencoded forms for sendMessage, multipart for
// sendMediaGroup, and a GET with an offset query parameter for getUpdates.
package telegram
