package wiki

import "strings"

// Category describes one entry in the mod category catalog. FullTitle is
// what pages are named after; Prefix and Title are the two halves of a
// "Group: Name" title, used for grouped listings.
type Category struct {
	Key       string
	FullTitle string
	Prefix    string
	Title     string
}

func newCategory(key, fullTitle string) Category {
	cat := Category{Key: key, FullTitle: fullTitle, Title: fullTitle}
	if prefix, title, ok := strings.Cut(fullTitle, ": "); ok {
		cat.Prefix = prefix
		cat.Title = title
	}
	return cat
}

// WikiFilename returns the category page's filename.
func (c Category) WikiFilename() string {
	return Filename(c.FullTitle)
}

// Link returns an HTML link to the category page, using the short title
// as display text.
func (c Category) Link() string {
	return Link(c.Title, c.FullTitle)
}

// Categories returns the full category catalog in display order. The
// order is curated, not alphabetical: broad gameplay groups first,
// catch-all groups last.
func Categories() []Category {
	return []Category{
		newCategory("major-pack", "Major Overhauls and Mod Packs"),

		newCategory("mode-balance", "General Gameplay and Balance: Game Mode Balance"),
		newCategory("scaling", "General Gameplay and Balance: Scaling Changes"),
		newCategory("mayhem", "General Gameplay and Balance: Mayhem Mode Changes"),
		newCategory("element", "General Gameplay and Balance: Elements and Damage Types"),
		newCategory("quest-changes", "General Gameplay and Balance: Quest Changes"),
		newCategory("economy", "General Gameplay and Balance: Economy Changes"),
		newCategory("event", "General Gameplay and Balance: Timed Event Changes"),
		newCategory("gameplay", "General Gameplay and Balance: Other Gameplay Changes"),

		newCategory("char-overhaul", "Characters and Skills: Full Character Overhauls"),
		newCategory("skill-system", "Characters and Skills: Skill System Changes"),
		newCategory("char-beastmaster", "Characters and Skills: Beastmaster Changes"),
		newCategory("char-gunner", "Characters and Skills: Gunner Changes"),
		newCategory("char-operative", "Characters and Skills: Operative Changes"),
		newCategory("char-siren", "Characters and Skills: Siren Changes"),
		newCategory("char-other", "Characters and Skills: Other Character Changes"),

		newCategory("gear-general", "Weapons/Gear: General"),
		newCategory("gear-anointments", "Weapons/Gear: Anointments"),
		newCategory("gear-brand", "Weapons/Gear: Brand Overhauls"),
		newCategory("gear-pack", "Weapons/Gear: Packs"),
		newCategory("gear-ar", "Weapons/Gear: Assault Rifles"),
		newCategory("gear-pistol", "Weapons/Gear: Pistols"),
		newCategory("gear-heavy", "Weapons/Gear: Heavy Weapons"),
		newCategory("gear-shotgun", "Weapons/Gear: Shotguns"),
		newCategory("gear-smg", "Weapons/Gear: SMGs"),
		newCategory("gear-sniper", "Weapons/Gear: Sniper Rifles"),
		newCategory("gear-grenade", "Weapons/Gear: Grenade Mods"),
		newCategory("gear-com", "Weapons/Gear: COMs"),
		newCategory("gear-shield", "Weapons/Gear: Shields"),
		newCategory("gear-artifact", "Weapons/Gear: Artifacts"),

		newCategory("loot-system", "Farming and Looting: Loot System Overhauls"),
		newCategory("enemy-drops", "Farming and Looting: Enemy Drop Changes"),
		newCategory("chests", "Farming and Looting: Chest and Container Changes"),
		newCategory("vendor", "Farming and Looting: Vending Machines"),
		newCategory("slots", "Farming and Looting: Slot Machines"),
		newCategory("quest-rewards", "Farming and Looting: Quest Rewards"),
		newCategory("loot-sources", "Farming and Looting: Other Loot Sources"),

		newCategory("spawns", "Enemies: Enemy Spawns"),
		newCategory("enemy", "Enemies: Enemy Changes"),

		newCategory("vehicle", "Maps and Public Transport: Vehicles"),
		newCategory("fast-travel", "Maps and Public Transport: Fast Travel"),
		newCategory("maps", "Maps and Public Transport: Map Alterations"),

		newCategory("av", "Audio and Visual: General A/V Settings"),
		newCategory("ui", "Audio and Visual: UI Changes"),
		newCategory("av-gear", "Audio and Visual: Weapon and Gear Visuals"),
		newCategory("av-char", "Audio and Visual: Character Visuals"),
		newCategory("av-enemy", "Audio and Visual: Enemy Visuals"),
		newCategory("audio", "Audio and Visual: Audio Changes"),
		newCategory("text", "Audio and Visual: Text Changes"),

		newCategory("qol", "Quality of Life: General QoL"),
		newCategory("qol-ui", "Quality of Life: UI QoL Changes"),
		newCategory("inventory", "Quality of Life: Inventory/Bank Changes"),

		newCategory("bugfix", "Other: Bugfixes"),
		newCategory("cheat", "Other: Cheat Mods"),
		newCategory("modpack", "Other: Mod Packs"),
		newCategory("translation", "Other: Translations"),
		newCategory("joke", "Other: Joke Mods"),
		newCategory("resource", "Other: Resource Mods"),
	}
}

// CategoryMap returns the catalog keyed by category key, with full
// titles as values. This is the validation set handed to the mod file
// extractors.
func CategoryMap() map[string]string {
	cats := Categories()
	m := make(map[string]string, len(cats))
	for _, cat := range cats {
		m[cat.Key] = cat.FullTitle
	}
	return m
}

// CategoryByKey looks a category up in the catalog.
func CategoryByKey(key string) (Category, bool) {
	for _, cat := range Categories() {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}
