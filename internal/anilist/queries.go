package anilist

// searchMangaQuery finds manga by title, returning every naming variant
// the match engine scores against.
const searchMangaQuery = `query ($search: String, $page: Int) {
  Page(page: $page, perPage: 10) {
    media(search: $search, type: MANGA) {
      id
      title { romaji english native }
      synonyms
      format
      status
      chapters
      volumes
      coverImage { large }
      startDate { year }
    }
  }
}`

// viewerMangaListQuery fetches the authenticated user's full manga list
// so previous remote values can be diffed against.
const viewerMangaListQuery = `query {
  Viewer { id }
}`

const mediaListCollectionQuery = `query ($userId: Int) {
  MediaListCollection(userId: $userId, type: MANGA) {
    lists {
      entries {
        id
        mediaId
        status
        progress
        score(format: POINT_100)
        private
      }
    }
  }
}`

// SaveMediaListEntryMutation upserts a list entry. Only the variables
// present in the request are touched; omitted fields keep their remote
// values.
const SaveMediaListEntryMutation = `mutation ($mediaId: Int, $status: MediaListStatus, $progress: Int, $progressVolumes: Int, $score: Float, $private: Boolean) {
  SaveMediaListEntry(mediaId: $mediaId, status: $status, progress: $progress, progressVolumes: $progressVolumes, score: $score, private: $private) {
    id
    status
    progress
  }
}`

// DeleteMediaListEntryMutation removes a list entry by its entry id.
const DeleteMediaListEntryMutation = `mutation ($id: Int) {
  DeleteMediaListEntry(id: $id) {
    deleted
  }
}`
