// Package linq provides an HTTP client for the LinqConnect family menu API.
//
// # Overview
//
// The API exposes a single read-only endpoint that returns every menu a
// building publishes for a date range:
//
//	GET {base}/FamilyMenu?districtId=..&buildingId=..&startDate=M-D-YYYY&endDate=M-D-YYYY
//
// The response is a JSON object whose FamilyMenuSessions key holds the
// nested session → menu plan → day → meal → recipe category → recipe tree.
// types.go mirrors that tree; the menu package turns it into per-day records.
//
// # Client Usage
//
//	client, err := linq.NewClient(districtID, buildingID, linq.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	feed, err := client.Fetch(ctx, time.Time{}, time.Time{}) // now .. now+30d
//
// # Request Handling
//
// All requests:
//   - Are bounded by a fixed 10 second timeout
//   - Wait on a rate limiter first (3 burst, then one per 10s by default)
//   - Set Accept: application/json and User-Agent: lunchtray/0.1
//
// # Error Handling
//
// Every failure is returned as *APIError so callers only deal with one
// error kind. Kind distinguishes transport failures (timeouts, refused
// connections), HTTP status failures and undecodable bodies, and
// errors.Is(err, ErrAPI) holds for all of them. The client never returns
// partial data.
//
// # Tolerant Decoding
//
// Scalar fields use the Text type, which accepts strings, numbers, bools and
// null. The feed has been seen to send serving sizes and nutrient values as
// either strings or numbers.
package linq
