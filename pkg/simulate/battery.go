package simulate

// battery is the charge state of one simulation run. The charge always stays
// within [0, capacityKWH].
type battery struct {
	capacityKWH float64
	chargeKWH   float64
}

// discharge draws up to kwh from the battery and returns how much was drawn.
func (b *battery) discharge(kwh float64) float64 {
	if b.chargeKWH >= kwh {
		b.chargeKWH -= kwh
		return kwh
	}
	drawn := b.chargeKWH
	b.chargeKWH = 0
	return drawn
}

// charge stores up to kwh in the battery and returns how much was stored.
func (b *battery) charge(kwh float64) float64 {
	room := b.capacityKWH - b.chargeKWH
	if kwh <= room {
		b.chargeKWH += kwh
		return kwh
	}
	b.chargeKWH = b.capacityKWH
	return room
}
