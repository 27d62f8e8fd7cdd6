package catalog

// Video is one entry in the watch-to-earn library. Watching a video past the
// configured completion threshold earns its point reward once per wallet.
type Video struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"durationSeconds"`
	RewardPoints    int64  `json:"rewardPoints"`
	Category        string `json:"category"`
	Description     string `json:"description"`
}

var videos = []Video{
	{
		ID:              1,
		Title:           "Introduction to Web3 & Blockchain",
		DurationSeconds: 330,
		RewardPoints:    10,
		Category:        "Education",
		Description:     "Learn the basics of Web3 technology and how blockchain works",
	},
	{
		ID:              2,
		Title:           "Solana Blockchain Deep Dive",
		DurationSeconds: 495,
		RewardPoints:    15,
		Category:        "Technology",
		Description:     "Explore Solana's high-performance blockchain architecture",
	},
	{
		ID:              3,
		Title:           "DeFi Fundamentals",
		DurationSeconds: 405,
		RewardPoints:    12,
		Category:        "Finance",
		Description:     "Understanding Decentralized Finance and its applications",
	},
	{
		ID:              4,
		Title:           "NFT Marketplace Guide",
		DurationSeconds: 440,
		RewardPoints:    14,
		Category:        "NFT",
		Description:     "Complete guide to buying, selling, and creating NFTs",
	},
	{
		ID:              5,
		Title:           "Crypto Trading Strategies",
		DurationSeconds: 550,
		RewardPoints:    18,
		Category:        "Trading",
		Description:     "Advanced trading strategies for cryptocurrency markets",
	},
	{
		ID:              6,
		Title:           "Smart Contracts Explained",
		DurationSeconds: 685,
		RewardPoints:    20,
		Category:        "Development",
		Description:     "How smart contracts work and their real-world applications",
	},
}

// Videos returns the video library in display order.
func Videos() []Video {
	out := make([]Video, len(videos))
	copy(out, videos)
	return out
}

// VideoByID returns the video with the given id.
func VideoByID(id int) (Video, bool) {
	for _, v := range videos {
		if v.ID == id {
			return v, true
		}
	}
	return Video{}, false
}
