package ppu

// tileAttr decodes the CGB tile-map attribute byte stored alongside a
// tile ID in VRAM bank 1. On DMG/non-CGB hardware these bytes don't
// exist in VRAM, so callers only consult it when isGBC is true.
type tileAttr struct {
	vramBank  uint8
	palette   uint8
	xFlip     bool
	yFlip     bool
	bgPriority bool
}

func decodeTileAttr(b uint8) tileAttr {
	return tileAttr{
		vramBank:   (b >> 3) & 0x1,
		palette:    b & 0x07,
		xFlip:      b&0x20 != 0,
		yFlip:      b&0x40 != 0,
		bgPriority: b&0x80 != 0,
	}
}

// tileRow returns the 8 decoded colour numbers for one row of the tile
// identified by tileID, in the given VRAM bank. signed selects the
// 0x8800 (signed) tile-data addressing mode instead of the 0x8000 one.
func (p *PPU) tileRow(bank uint8, tileID uint8, signed bool, row uint8) [8]uint8 {
	// VRAM-relative offset (0x0000-0x1FFF) of the tile's data, per the
	// addressing mode selected by LCDC bit 4.
	var base uint16
	if signed {
		base = uint16(0x1000 + int32(int8(tileID))*16)
	} else {
		base = uint16(tileID) * 16
	}
	lo := p.tileByte(bank, base+uint16(row)*2)
	hi := p.tileByte(bank, base+uint16(row)*2+1)
	return decodeTileRow(lo, hi)
}

// mapEntry returns the tile ID and, on CGB, the tile attribute stored in
// the tile map at mapBase for an absolute tile-map coordinate.
func (p *PPU) mapEntry(mapBase uint16, mapX, mapY uint8) (tileID uint8, attr tileAttr) {
	offset := uint16(mapY)*32 + uint16(mapX)
	tileID = p.tileByte(0, mapBase-0x8000+offset)
	if p.isGBC {
		attr = decodeTileAttr(p.tileByte(1, mapBase-0x8000+offset))
	}
	return
}

// renderScanline computes one row of background, window, and sprite
// pixels and writes the resulting RGBA8 quadruples into scanlineRows[ly].
func (p *PPU) renderScanline() {
	if p.ly >= ScreenHeight {
		return
	}
	var colourNum [ScreenWidth]uint8
	var bgAttr [ScreenWidth]tileAttr

	if (p.BackgroundEnabled || p.isGBC) && !p.Debug.DisableBackground {
		p.renderBackgroundRow(&colourNum, &bgAttr)
	}
	if p.WindowEnabled && !p.Debug.DisableWindow && p.wy <= p.ly && p.wx < 167 {
		p.renderWindowRow(&colourNum, &bgAttr)
	}

	for x := uint8(0); x < ScreenWidth; x++ {
		if p.isGBC {
			p.scanlineRows[p.ly][x] = p.cgbBG.GetColour(bgAttr[x].palette, colourNum[x])
		} else {
			p.scanlineRows[p.ly][x] = p.bgp.GetColour(colourNum[x])
		}
	}

	if p.SpriteEnabled && !p.Debug.DisableSprites {
		p.renderSpritesRow(colourNum, bgAttr)
	}
}

func (p *PPU) renderBackgroundRow(colourNum *[ScreenWidth]uint8, attr *[ScreenWidth]tileAttr) {
	yPos := p.ly + p.scy
	mapY := yPos / 8
	row := yPos % 8

	for x := uint8(0); x < ScreenWidth; x++ {
		xPos := x + p.scx
		mapX := xPos / 8

		tileID, a := p.mapEntry(p.BackgroundTileMapAddress, mapX, mapY)
		r := row
		if a.yFlip {
			r = 7 - r
		}
		tr := p.tileRow(a.vramBank, tileID, p.UsingSignedTileData(), r)
		col := x % 8
		if a.xFlip {
			col = 7 - col
		}
		colourNum[x] = tr[col]
		attr[x] = a
	}
}

func (p *PPU) renderWindowRow(colourNum *[ScreenWidth]uint8, attr *[ScreenWidth]tileAttr) {
	wx := int(p.wx) - 7
	mapY := p.windowLine / 8
	row := p.windowLine % 8

	hit := false
	for x := uint8(0); x < ScreenWidth; x++ {
		if int(x) < wx {
			continue
		}
		hit = true
		winX := uint8(int(x) - wx)
		mapX := winX / 8

		tileID, a := p.mapEntry(p.WindowTileMapAddress, mapX, mapY)
		r := row
		if a.yFlip {
			r = 7 - r
		}
		tr := p.tileRow(a.vramBank, tileID, p.UsingSignedTileData(), r)
		col := winX % 8
		if a.xFlip {
			col = 7 - col
		}
		colourNum[x] = tr[col]
		attr[x] = a
	}
	if hit {
		p.windowLine++
	}
}

func (p *PPU) renderSpritesRow(bgColour [ScreenWidth]uint8, bgAttr [ScreenWidth]tileAttr) {
	list := p.oam.visibleOn(p.ly, p.SpriteSize, nil)

	var occupied [ScreenWidth]bool
	var occupiedX [ScreenWidth]uint8

	for _, idx := range list {
		s := p.oam.Sprites[idx]
		sx := s.ScreenX()
		sy := s.ScreenY()

		tileRow := p.ly - uint8(sy)
		if s.FlipY() {
			tileRow = p.SpriteSize - tileRow - 1
		}

		tileID := s.Tile
		if p.SpriteSize == 16 {
			tileID &= 0xFE
			if tileRow >= 8 {
				tileID |= 1
				tileRow -= 8
			}
		}

		row := p.tileRow(s.VRAMBank(), tileID, false, tileRow)

		for col := uint8(0); col < 8; col++ {
			screenX := sx + int(col)
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			c := col
			if s.FlipX() {
				c = 7 - c
			}
			cn := row[c]
			if cn == 0 {
				continue
			}

			if occupied[screenX] {
				if !p.isGBC && occupiedX[screenX] <= uint8(sx+128) {
					continue
				}
				if p.isGBC {
					continue
				}
			}

			if s.Priority() && (p.BackgroundEnabled || p.isGBC) {
				bgOpaque := bgColour[screenX] != 0
				if p.isGBC && bgAttr[screenX].bgPriority && bgOpaque {
					continue
				}
				if bgOpaque {
					continue
				}
			}

			var rgb [4]uint8
			if p.isGBC {
				rgb = p.cgbOBJ.GetColour(s.CGBPalette(), cn)
			} else if s.DMGPalette() == 1 {
				rgb = p.obp1.GetColour(cn)
			} else {
				rgb = p.obp0.GetColour(cn)
			}

			p.scanlineRows[p.ly][screenX] = rgb
			occupied[screenX] = true
			occupiedX[screenX] = uint8(sx + 128)
		}
	}
}
