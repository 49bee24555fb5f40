/*
NAME
  shutter.go - CameraShutter pack (0x7F).

DESCRIPTION
  Byte layout (original design; not mandated by a spec.md seed scenario):

    byte 4, bit 7: mode flag, 1 = consumer, 0 = professional.
    consumer mode:    byte 1 = 0xFF, byte 2 = 0xFF (unused),
                      consumer_shutter_speed = byte3<<7 | (byte4 & 0x7F)
    professional mode: byte 3 = 0xFF (unused),
                      professional_shutter_speed_upper = byte 1
                      professional_shutter_speed_lower = byte 2

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

import (
	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

// CameraShutter carries the camera's electronic shutter speed, either as a
// single consumer-mode value or as a pair of professional-mode register
// values.
type CameraShutter struct {
	ConsumerShutterSpeed             *int // 0..0x7FFE
	ProfessionalShutterSpeedUpper    *int // 0..0xFE
	ProfessionalShutterSpeedLower    *int // 0..0xFE
}

func (CameraShutter) Type() Type { return TypeCameraShutter }

func decodeCameraShutter(b [5]byte, _ system.System) (Pack, error) {
	c := CameraShutter{}
	if b[4]&0x80 != 0 {
		v := int(b[3])<<7 | int(b[4]&0x7F)
		c.ConsumerShutterSpeed = &v
		return c, nil
	}
	if b[1] != sentinelByte {
		u := int(b[1])
		c.ProfessionalShutterSpeedUpper = &u
	}
	if b[2] != sentinelByte {
		l := int(b[2])
		c.ProfessionalShutterSpeedLower = &l
	}
	return c, nil
}

func (c CameraShutter) Validate(system.System) error {
	if c.ConsumerShutterSpeed != nil {
		if *c.ConsumerShutterSpeed < 0 || *c.ConsumerShutterSpeed > 0x7FFE {
			return errors.New("camera shutter: consumer shutter speed is out of range")
		}
	}
	if c.ProfessionalShutterSpeedUpper != nil {
		if *c.ProfessionalShutterSpeedUpper < 0 || *c.ProfessionalShutterSpeedUpper > 0xFE {
			return errors.New("camera shutter: professional shutter speed upper is out of range")
		}
	}
	if c.ProfessionalShutterSpeedLower != nil {
		if *c.ProfessionalShutterSpeedLower < 0 || *c.ProfessionalShutterSpeedLower > 0xFE {
			return errors.New("camera shutter: professional shutter speed lower is out of range")
		}
	}
	return nil
}

func (c CameraShutter) Encode(sys system.System) ([5]byte, error) {
	if err := c.Validate(sys); err != nil {
		return [5]byte{}, err
	}
	var b [5]byte
	b[0] = byte(TypeCameraShutter)
	if c.ConsumerShutterSpeed != nil {
		b[1], b[2] = sentinelByte, sentinelByte
		b[3] = byte(*c.ConsumerShutterSpeed >> 7)
		b[4] = byte(*c.ConsumerShutterSpeed&0x7F) | 0x80
		return b, nil
	}
	b[1] = sentinelByte
	b[2] = sentinelByte
	if c.ProfessionalShutterSpeedUpper != nil {
		b[1] = byte(*c.ProfessionalShutterSpeedUpper)
	}
	if c.ProfessionalShutterSpeedLower != nil {
		b[2] = byte(*c.ProfessionalShutterSpeedLower)
	}
	b[3] = sentinelByte
	b[4] = 0
	return b, nil
}

func fromTextCameraShutter(fields map[string]string) (Pack, error) {
	consumer, err := parseHexInt(fields["camera_shutter_speed_consumer"])
	if err != nil {
		return nil, errors.Wrap(err, "camera shutter: consumer")
	}
	upper, err := parseHexInt(fields["camera_shutter_speed_professional_upper"])
	if err != nil {
		return nil, errors.Wrap(err, "camera shutter: professional upper")
	}
	lower, err := parseHexInt(fields["camera_shutter_speed_professional_lower"])
	if err != nil {
		return nil, errors.Wrap(err, "camera shutter: professional lower")
	}
	return CameraShutter{
		ConsumerShutterSpeed:          consumer,
		ProfessionalShutterSpeedUpper: upper,
		ProfessionalShutterSpeedLower: lower,
	}, nil
}

func (c CameraShutter) ToText() map[string]string {
	return map[string]string{
		"camera_shutter_speed_consumer":              hexInt(c.ConsumerShutterSpeed, 4),
		"camera_shutter_speed_professional_upper":    hexInt(c.ProfessionalShutterSpeedUpper, 2),
		"camera_shutter_speed_professional_lower":    hexInt(c.ProfessionalShutterSpeedLower, 2),
	}
}
