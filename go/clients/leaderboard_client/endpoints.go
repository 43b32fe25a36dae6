package leaderboard_client

const (
	// DriveFileID is the shared leaderboard file
	DriveFileID = "1LDEy5ERl0jmGywHrArtUVnBrv4aSvSPw"

	// DefaultURL downloads the shared leaderboard
	DefaultURL = "https://drive.google.com/uc?export=download&id=" + DriveFileID

	AcceptHeader    = "Accept"
	JsonContentType = "application/json"
)
