package decoder

// doctorListDTO is the top-level object of the practice export
type doctorListDTO struct {
	ArztPraxisDatas []doctorDTO `json:"arztPraxisDatas"`
}

// doctorDTO is one practice entry. All fields are optional.
type doctorDTO struct {
	KeineSprechzeiten bool                 `json:"keineSprechzeiten"`
	Name              lenientString        `json:"name"`
	Tel               lenientString        `json:"tel"`
	Handy             lenientString        `json:"handy"`
	Email             lenientString        `json:"email"`
	Strasse           lenientString        `json:"strasse"`
	Hausnummer        lenientString        `json:"hausnummer"`
	PLZ               lenientString        `json:"plz"`
	Ort               lenientString        `json:"ort"`
	TSZ               []consultationDayDTO `json:"tsz"`
}

// consultationDayDTO is one calendar day, D is "D.M" without a year
type consultationDayDTO struct {
	D          string                `json:"d"`
	T          string                `json:"t"`
	TSZDesTyps []consultationTypeDTO `json:"tszDesTyps"`
}

type consultationTypeDTO struct {
	Typ          string         `json:"typ"`
	Sprechzeiten []timeFrameDTO `json:"sprechzeiten"`
}

// timeFrameDTO holds "HH:MM-HH:MM"
type timeFrameDTO struct {
	Zeit string `json:"zeit"`
}
