package territory

// TablaCiudades devuelve la tabla de referencia por defecto: ciudades de Chile
// de norte a sur, con el orden de visita dentro de cada zona. Las claves van
// sin diacríticos; el resolver normaliza la entrada antes de comparar. Se
// conservan algunas variantes mal escritas que aparecen en las fichas de
// clientes ("chanarral", "villarica", "punta arena").
//
// La función entrega una copia nueva en cada llamada; el resolver vuelve a
// copiar al construirse, así que nadie comparte estado mutable.
func TablaCiudades() map[string]Posicion {
	tabla := map[string]Posicion{
		// ── NORTE ─────────────────────────────────────────────
		"arica":         {ZonaNorte, 0},
		"parinacota":    {ZonaNorte, 1},
		"iquique":       {ZonaNorte, 2},
		"alto hospicio": {ZonaNorte, 3},
		"pozo almonte":  {ZonaNorte, 4},
		"tocopilla":     {ZonaNorte, 5},
		"calama":        {ZonaNorte, 6},
		"antofagasta":   {ZonaNorte, 7},
		"mejillones":    {ZonaNorte, 8},
		"taltal":        {ZonaNorte, 9},
		"chanaral":      {ZonaNorte, 10},
		"chanarral":     {ZonaNorte, 10},
		"copiapo":       {ZonaNorte, 11},
		"vallenar":      {ZonaNorte, 12},
		"huasco":        {ZonaNorte, 13},
		"freirina":      {ZonaNorte, 14},
		"la serena":     {ZonaNorte, 15},
		"coquimbo":      {ZonaNorte, 16},
		"ovalle":        {ZonaNorte, 17},
		"combarbala":    {ZonaNorte, 18},
		"illapel":       {ZonaNorte, 19},
		"salamanca":     {ZonaNorte, 20},
		"los vilos":     {ZonaNorte, 21},
		// ── CENTRO ────────────────────────────────────────────
		// V Región
		"valparaiso":    {ZonaCentro, 0},
		"vina del mar":  {ZonaCentro, 1},
		"quillota":      {ZonaCentro, 2},
		"la calera":     {ZonaCentro, 3},
		"hijuelas":      {ZonaCentro, 4},
		"llaillay":      {ZonaCentro, 5},
		"san felipe":    {ZonaCentro, 6},
		"los andes":     {ZonaCentro, 7},
		"cabildo":       {ZonaCentro, 8},
		"la ligua":      {ZonaCentro, 9},
		"casablanca":    {ZonaCentro, 10},
		"san antonio":   {ZonaCentro, 11},
		"villa alemana": {ZonaCentro, 12},
		"quilpue":       {ZonaCentro, 13},
		"limache":       {ZonaCentro, 14},
		// RM
		"santiago":      {ZonaCentro, 15},
		"providencia":   {ZonaCentro, 16},
		"las condes":    {ZonaCentro, 17},
		"vitacura":      {ZonaCentro, 18},
		"nunoa":         {ZonaCentro, 19},
		"maipu":         {ZonaCentro, 20},
		"pudahuel":      {ZonaCentro, 21},
		"quilicura":     {ZonaCentro, 22},
		"recoleta":      {ZonaCentro, 23},
		"independencia": {ZonaCentro, 24},
		"la florida":    {ZonaCentro, 25},
		"puente alto":   {ZonaCentro, 26},
		"san bernardo":  {ZonaCentro, 27},
		"buin":          {ZonaCentro, 28},
		"paine":         {ZonaCentro, 29},
		"melipilla":     {ZonaCentro, 30},
		"talagante":     {ZonaCentro, 31},
		"penaflor":      {ZonaCentro, 32},
		"colina":        {ZonaCentro, 33},
		"lampa":         {ZonaCentro, 34},
		// VI–VII
		"rancagua":       {ZonaCentro, 35},
		"san vicente tt": {ZonaCentro, 36},
		"san vicente":    {ZonaCentro, 36},
		"peumo":          {ZonaCentro, 37},
		"san fernando":   {ZonaCentro, 38},
		"santa cruz":     {ZonaCentro, 39},
		"rengo":          {ZonaCentro, 40},
		"hualane":        {ZonaCentro, 41},
		"curico":         {ZonaCentro, 42},
		"molina":         {ZonaCentro, 43},
		"talca":          {ZonaCentro, 44},
		"maule":          {ZonaCentro, 45},
		"san javier":     {ZonaCentro, 46},
		"linares":        {ZonaCentro, 47},
		"parral":         {ZonaCentro, 48},
		"cauquenes":      {ZonaCentro, 49},
		"constitucion":   {ZonaCentro, 50},
		// VIII norte
		"chillan":       {ZonaCentro, 51},
		"chillan viejo": {ZonaCentro, 52},
		"san carlos":    {ZonaCentro, 53},
		"cabrero":       {ZonaCentro, 54},
		// ── SUR ───────────────────────────────────────────────
		"los angeles":    {ZonaSur, 0},
		"laja":           {ZonaSur, 1},
		"angol":          {ZonaSur, 2},
		"traiguen":       {ZonaSur, 3},
		"curacautin":     {ZonaSur, 4},
		"concepcion":     {ZonaSur, 5},
		"talcahuano":     {ZonaSur, 6},
		"tome":           {ZonaSur, 7},
		"hualpen":        {ZonaSur, 8},
		"coronel":        {ZonaSur, 9},
		"lota":           {ZonaSur, 10},
		"lebu":           {ZonaSur, 11},
		"canete":         {ZonaSur, 12},
		"arauco":         {ZonaSur, 13},
		"curanilahue":    {ZonaSur, 14},
		"temuco":         {ZonaSur, 15},
		"lautaro":        {ZonaSur, 16},
		"victoria":       {ZonaSur, 17},
		"nueva imperial": {ZonaSur, 18},
		"cholchol":       {ZonaSur, 19},
		"tolten":         {ZonaSur, 20},
		"villarrica":     {ZonaSur, 21},
		"villarica":      {ZonaSur, 21},
		"pucon":          {ZonaSur, 22},
		"loncoche":       {ZonaSur, 23},
		"pitrufquen":     {ZonaSur, 24},
		"valdivia":       {ZonaSur, 25},
		"la union":       {ZonaSur, 26},
		"rio bueno":      {ZonaSur, 27},
		"osorno":         {ZonaSur, 28},
		"puerto octay":   {ZonaSur, 29},
		"frutillar":      {ZonaSur, 30},
		"puerto montt":   {ZonaSur, 31},
		"puerto varas":   {ZonaSur, 32},
		"castro":         {ZonaSur, 33},
		"ancud":          {ZonaSur, 34},
		"quemchi":        {ZonaSur, 35},
		"quellon":        {ZonaSur, 36},
		"futaleufu":      {ZonaSur, 37},
		"futalefu":       {ZonaSur, 37},
		"coyhaique":      {ZonaSur, 38},
		"coihaique":      {ZonaSur, 38},
		"puerto aysen":   {ZonaSur, 39},
		"puerto cisnes":  {ZonaSur, 40},
		"cochrane":       {ZonaSur, 41},
		"punta arenas":   {ZonaSur, 42},
		"punta arena":    {ZonaSur, 42},
		"puerto natales": {ZonaSur, 43},
		"porvenir":       {ZonaSur, 44},
	}
	copia := make(map[string]Posicion, len(tabla))
	for k, v := range tabla {
		copia[k] = v
	}
	return copia
}
