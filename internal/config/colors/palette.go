package colors

// palette holds the Kanagawa colors shared by the wave, dragon and lotus
// presets.
var palette = struct {
	sumiInk1, sumiInk2, sumiInk3, sumiInk4, sumiInk6 string
	waveBlue1, waveBlue2                             string
	winterYellow, winterRed, winterBlue              string
	samuraiRed, roninYellow, dragonBlue              string
	fujiWhite, fujiGray, oldWhite                    string
	oniViolet, crystalBlue, waveAqua2, springGreen   string
	peachRed, surimiOrange, carpYellow               string

	dragonBlack1, dragonBlack3, dragonBlack4, dragonBlack5, dragonBlack6 string
	dragonWhite, dragonGreen2, dragonRed, dragonAsh, dragonGray           string
	dragonViolet, dragonBlue2, dragonYellow, dragonOrange                 string

	lotusInk1, lotusWhite2, lotusWhite3, lotusWhite4 string
	lotusViolet4, lotusBlue4, lotusGreen, lotusRed   string
	lotusGray3, lotusTeal1, lotusYellow3             string
}{
	sumiInk1: "#181820", sumiInk2: "#1A1A22", sumiInk3: "#1F1F28", sumiInk4: "#2A2A37", sumiInk6: "#54546D",
	waveBlue1: "#223249", waveBlue2: "#2D4F67",
	winterYellow: "#49443C", winterRed: "#43242B", winterBlue: "#252535",
	samuraiRed: "#E82424", roninYellow: "#FF9E3B", dragonBlue: "#658594",
	fujiWhite: "#DCD7BA", fujiGray: "#727169", oldWhite: "#C8C093",
	oniViolet: "#957FB8", crystalBlue: "#7E9CD8", waveAqua2: "#7AA89F", springGreen: "#98BB6C",
	peachRed: "#FF5D62", surimiOrange: "#FFA066", carpYellow: "#E6C384",

	dragonBlack1: "#12120F", dragonBlack3: "#181616", dragonBlack4: "#282727", dragonBlack5: "#393836", dragonBlack6: "#625E5A",
	dragonWhite: "#C5C9C5", dragonGreen2: "#8A9A7B", dragonRed: "#C4746E", dragonAsh: "#737C73", dragonGray: "#A6A69C",
	dragonViolet: "#8992A7", dragonBlue2: "#8BA4B0", dragonYellow: "#C4B28A", dragonOrange: "#B6927B",

	lotusInk1: "#545464", lotusWhite2: "#E5DDB0", lotusWhite3: "#F2ECBC", lotusWhite4: "#E7DBA0",
	lotusViolet4: "#624C83", lotusBlue4: "#4D699B", lotusGreen: "#6F894E", lotusRed: "#C84053",
	lotusGray3: "#8A8980", lotusTeal1: "#4E8CA2", lotusYellow3: "#DE9800",
}
