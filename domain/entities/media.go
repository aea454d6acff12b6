package entities

// ImageSource holds the HTTPS source URLs for a media item.
type ImageSource struct {
	Thumbnail string `json:"thumbnail"`
	Full      string `json:"full"`
}

// Media is a single file belonging to a Stack. MediaID is globally unique
// across the whole media collection; SequenceNumber is the item's zero-based
// position in the submitted media array and determines in-stack ordering.
type Media struct {
	MediaID         string      `json:"mediaId"`
	StackID         string      `json:"stackId"`
	AlternativeText string      `json:"alternativeText,omitempty"`
	ImageSrc        ImageSource `json:"imageSrc"`
	MediaType       string      `json:"mediaType"`
	SequenceNumber  int         `json:"sequenceNumber"`
}
