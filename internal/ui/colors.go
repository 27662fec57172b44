package ui

import "image/color"

var (
	colWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray      = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colLightGray = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colDirBlue   = color.NRGBA{R: 0, G: 0, B: 128, A: 255}
	colSelected  = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colSidebar   = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colDisabled  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	colAccent    = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colDanger    = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colDriveIcon = color.NRGBA{R: 96, G: 125, B: 139, A: 255}
	colDivider   = color.NRGBA{A: 50}

	colPreviewBg       = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	colCheckerLight    = color.NRGBA{R: 238, G: 238, B: 238, A: 255}
	colCodeBlockBg     = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colCodeBlockBorder = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	colBlockquoteBg    = color.NRGBA{R: 248, G: 248, B: 248, A: 255}
	colBlockquoteLine  = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
	colErrorBannerBg   = color.NRGBA{R: 255, G: 235, B: 238, A: 255}
	colSliderTrack     = color.NRGBA{R: 210, G: 210, B: 210, A: 255}
)
