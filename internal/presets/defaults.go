package presets

// paletteTemplate builds the two-pass palette graph shared by all quality
// options. {scale} and {loop} are substituted at compile time.
func paletteTemplate(palettegen, paletteuse string) string {
	return "-filter_complex scale={scale}[s];[s]split[a][b];[a]palettegen=" + palettegen +
		":reserve_transparent=1[palette];[b][palette]paletteuse=" + paletteuse +
		"alpha_threshold=128 -loop {loop}"
}

// DefaultCatalog returns the built-in categories and the GIF format.
func DefaultCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{
				ID:    CategoryQuality,
				Label: "Quality",
				Value: "-filter_complex",
				Options: []Option{
					{ID: "filter_complex-8", Label: "Potato", Value: paletteTemplate("max_colors=8", "")},
					{ID: "filter_complex-64", Label: "Retro", Value: paletteTemplate("max_colors=64", "")},
					{ID: "filter_complex-128", Label: "90s", Value: paletteTemplate("max_colors=128", "")},
					{ID: "filter_complex-256", Label: "Millennial", Value: paletteTemplate("max_colors=256", "")},
					{ID: "filter_complex-hi", Label: "Ultra", Value: paletteTemplate("stats_mode=single", "new=1:"), IsDefault: true},
				},
			},
			{
				ID:    CategoryDuration,
				Label: "Duration/Speed",
				Value: "duration",
				Options: []Option{
					{ID: "gif-duration-05", Label: "0.5s", Value: "0.5"},
					{ID: "gif-duration-1", Label: "1s", Value: "1"},
					{ID: "gif-duration-3", Label: "3s", Value: "3", IsDefault: true},
					{ID: "gif-duration-5", Label: "5s", Value: "5"},
					{ID: "gif-duration-7", Label: "7s", Value: "7"},
					{ID: "gif-duration-10", Label: "10s", Value: "10"},
					{ID: "gif-duration-custom", Label: "Custom Duration", IsInput: true, InputType: InputNumber},
				},
			},
			{
				ID:    CategoryScale,
				Label: "Width",
				Value: "scale",
				Options: []Option{
					{ID: "gif-scale-source", Label: "source", Value: ""},
					{ID: "gif-scale-80", Label: "80px", Value: "80:-1"},
					{ID: "gif-scale-160", Label: "160px", Value: "160:-1"},
					{ID: "gif-scale-320", Label: "320px", Value: "320:-1", IsDefault: true},
					{ID: "gif-scale-480", Label: "480px", Value: "480:-1"},
					{ID: "gif-scale-640", Label: "640px", Value: "640:-1"},
					{ID: "gif-scale-custom", Label: "Custom Width", IsInput: true, InputType: InputNumber},
				},
			},
			{
				ID:    CategoryLoop,
				Label: "Loop",
				Value: "loop",
				Options: []Option{
					{ID: "gif-loop-0", Label: "No Loop", Value: "-1"},
					{ID: "gif-loop-2", Label: "One Loop", Value: "1"},
					{ID: "gif-loop-1", Label: "Infinite", Value: "0", IsDefault: true},
				},
			},
		},
		Formats: []Format{
			{
				ID:        "gif",
				Label:     "GIF",
				Value:     "GIF",
				Ext:       "gif",
				MIMEType:  "image/gif",
				IsDefault: true,
				Settings: map[string]Choice{
					CategoryQuality:  {OptionID: "filter_complex-hi"},
					CategoryDuration: {OptionID: "gif-duration-3"},
					CategoryScale:    {OptionID: "gif-scale-320"},
					CategoryLoop:     {OptionID: "gif-loop-1"},
				},
			},
		},
	}
}
