package feed

// DefaultSources lists GameFi news feeds in the order their items appear in the combined output.
var DefaultSources = []Source{
	NewSource("https://fintechs.fi/category/gamefi/feed/", "fintechs.xml"),
	NewSource("https://bitebi.com/category/crypto/gamefi/feed/", "bitebi.xml"),
	NewSource("https://news.coincu.com/c/gamefi/feed/", "coincu.xml"),
	NewSource("https://blog.joystick.club/feed", "joystick.xml"),
	NewSource("https://polemos.io/feed/", "polemos.xml"),
	NewSource("https://playtoearndiary.com/category/gamefi/feed/", "playtoearndiary.xml"),
	NewSource("https://suzumlm.com/en/category/news/games/feed/", "suzumlm.xml"),
	NewSource("https://nftandgamefi.com/category/gamefi/feed/", "nftandgamefi.xml"),
	NewSource("https://metaknow.org/category/gamefi/feed/", "metaknown.xml"),
	NewSource("https://defi-gamefi.com/feed/", "defi-gamefi.xml"),
	NewSource("https://zaisan.io/category/gamefi/feed/", "zaisan.xml"),
	NewSource("https://algobitz.com/category/gamefi/feed/", "algobitz.xml"),
	NewSource("https://nft4genz.com/category/gamefi/feed/", "nft4gnez.xml"),
	NewSource("https://metaversenews.com/category/gamefi/feed/", "metaversenews.xml"),
	NewSource("https://wngamefi.com/feed", "wangamefi.xml"),
}
