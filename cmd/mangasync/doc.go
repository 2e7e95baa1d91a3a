// Command mangasync matches a manga library export against the AniList
// catalog and pushes reading-list updates under the service rate limit.
package main
